package service

import (
	"Gazette/internal/api/config"
	"Gazette/internal/api/dto"
	"Gazette/internal/model"
	"Gazette/internal/pkg/consts"
	"Gazette/internal/pkg/metrics"
	"Gazette/internal/pkg/ranking"
	"Gazette/internal/pkg/util"
	"Gazette/internal/repository"
	"context"
	"fmt"
	"strings"
	"time"
)

type FeedService interface {
	ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostPageDTO, error)
	Trending(ctx context.Context) ([]*dto.PostDTO, error)
	Featured(ctx context.Context) ([]*dto.PostDTO, error)
	Categories(ctx context.Context) (*dto.CategoriesDTO, error)
}

type feedServiceImpl struct {
	postRepo   repository.PostRepo
	engagement EngagementAggregator
	images     ImageStore
	cfg        config.FeedConfig
	now        func() time.Time
}

func NewFeedService(postRepo repository.PostRepo, engagement EngagementAggregator, images ImageStore, cfg config.FeedConfig, now func() time.Time) FeedService {
	if now == nil {
		now = time.Now
	}
	return &feedServiceImpl{
		postRepo:   postRepo,
		engagement: engagement,
		images:     images,
		cfg:        cfg,
		now:        now,
	}
}

// ListPosts 先对整个筛选集排序再分页，保证翻页时顺序一致
func (s *feedServiceImpl) ListPosts(ctx context.Context, query *dto.PostListQuery) (*dto.PostPageDTO, error) {
	page := util.ParsePositiveInt(query.Page, 1)
	perPage := util.ParsePositiveInt(query.PerPage, s.cfg.DefaultPageSize)
	if s.cfg.MaxPageSize > 0 && perPage > s.cfg.MaxPageSize {
		perPage = s.cfg.MaxPageSize
	}

	candidates, err := s.postRepo.ListRankingCandidates(ctx, normalizeCategory(query.Category))
	if err != nil {
		return nil, fmt.Errorf("list ranking candidates: %w", err)
	}
	start := time.Now()
	entries, err := s.engagement.Snapshots(ctx, candidates)
	if err != nil {
		return nil, err
	}

	mode := ranking.ParseMode(query.Sort)
	ranked := ranking.Rank(entries, mode, s.now())
	metrics.ObserveRank(string(mode), len(entries), start)
	p := util.Paginate(len(ranked), page, perPage)

	data, err := s.loadPosts(ctx, ranked[p.Offset:p.Offset+p.Limit], indexEntries(entries))
	if err != nil {
		return nil, err
	}
	return &dto.PostPageDTO{
		Data:        data,
		CurrentPage: page,
		LastPage:    p.LastPage,
		Total:       int64(len(ranked)),
	}, nil
}

// Trending 全部帖子按热度公式排序，取前 TrendingLimit 条
func (s *feedServiceImpl) Trending(ctx context.Context) ([]*dto.PostDTO, error) {
	candidates, err := s.postRepo.ListRankingCandidates(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list ranking candidates: %w", err)
	}
	start := time.Now()
	entries, err := s.engagement.Snapshots(ctx, candidates)
	if err != nil {
		return nil, err
	}
	ids := ranking.RankTrending(entries, s.now(), s.cfg.TrendingLimit)
	metrics.ObserveRank("trending_endpoint", len(entries), start)
	return s.loadPosts(ctx, ids, indexEntries(entries))
}

// Featured 依次尝试人工精选、互动分、带图帖子浏览量，第一个非空的层级即为结果
func (s *feedServiceImpl) Featured(ctx context.Context) ([]*dto.PostDTO, error) {
	limit := s.cfg.FeaturedLimit

	featured, err := s.postRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured posts: %w", err)
	}
	if len(featured) > 0 {
		entries, err := s.engagement.Snapshots(ctx, featured)
		if err != nil {
			return nil, err
		}
		return s.toDTOs(featured, indexEntries(entries))
	}

	candidates, err := s.postRepo.ListRankingCandidates(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list ranking candidates: %w", err)
	}
	entries, err := s.engagement.Snapshots(ctx, candidates)
	if err != nil {
		return nil, err
	}

	ids := ranking.RankByEngagement(entries, limit)
	if len(ids) == 0 {
		ids = ranking.RankImagesByPopularity(entries, limit)
	}
	return s.loadPosts(ctx, ids, indexEntries(entries))
}

func (s *feedServiceImpl) Categories(ctx context.Context) (*dto.CategoriesDTO, error) {
	categories, err := s.postRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return &dto.CategoriesDTO{Categories: categories}, nil
}

// loadPosts 按 ids 的顺序加载完整帖子，期间被删除的帖子直接跳过
func (s *feedServiceImpl) loadPosts(ctx context.Context, ids []uint64, index map[uint64]ranking.Entry) ([]*dto.PostDTO, error) {
	if len(ids) == 0 {
		return []*dto.PostDTO{}, nil
	}
	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	byID := make(map[uint64]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			ordered = append(ordered, post)
		}
	}
	return s.toDTOs(ordered, index)
}

func (s *feedServiceImpl) toDTOs(posts []*model.Post, index map[uint64]ranking.Entry) ([]*dto.PostDTO, error) {
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		postDTO, err := toPostDTO(post, s.images)
		if err != nil {
			return nil, err
		}
		withEngagement(postDTO, index[post.ID])
		result = append(result, postDTO)
	}
	return result, nil
}

// normalizeCategory 空值与 all 表示不筛选
func normalizeCategory(raw string) string {
	category := strings.TrimSpace(raw)
	if category == consts.CategoryAll {
		return ""
	}
	return category
}
