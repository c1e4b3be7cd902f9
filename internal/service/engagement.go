package service

import (
	"Gazette/internal/model"
	"Gazette/internal/pkg/ranking"
	"Gazette/internal/repository"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// EngagementAggregator 按请求实时统计帖子的点赞、评论数，不做跨请求缓存
type EngagementAggregator interface {
	Snapshots(ctx context.Context, posts []*model.Post) ([]ranking.Entry, error)
}

type engagementAggregatorImpl struct {
	engagementRepo repository.EngagementRepo
}

func NewEngagementAggregator(engagementRepo repository.EngagementRepo) EngagementAggregator {
	return &engagementAggregatorImpl{
		engagementRepo: engagementRepo,
	}
}

// Snapshots 返回与 posts 同序的快照，没有点赞或评论的帖子计数为 0
func (s *engagementAggregatorImpl) Snapshots(ctx context.Context, posts []*model.Post) ([]ranking.Entry, error) {
	entries := make([]ranking.Entry, 0, len(posts))
	if len(posts) == 0 {
		return entries, nil
	}

	ids := make([]uint64, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}

	var likes, comments map[uint64]int64
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likes, err = s.engagementRepo.CountLikes(gCtx, ids)
		if err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		comments, err = s.engagementRepo.CountComments(gCtx, ids)
		if err != nil {
			return fmt.Errorf("count comments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, post := range posts {
		entries = append(entries, ranking.Entry{
			PostID:    post.ID,
			CreatedAt: post.CreatedAt,
			Likes:     likes[post.ID],
			Comments:  comments[post.ID],
			Views:     post.Views,
			HasImage:  post.Image != nil && *post.Image != "",
		})
	}
	return entries, nil
}

func indexEntries(entries []ranking.Entry) map[uint64]ranking.Entry {
	index := make(map[uint64]ranking.Entry, len(entries))
	for _, e := range entries {
		index[e.PostID] = e
	}
	return index
}
