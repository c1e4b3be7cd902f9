package service

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/model"
	"Gazette/internal/pkg/util"
	"Gazette/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
)

type PostMetricService interface {
	// SyncDailyMetrics 把所有帖子当前的累计互动数写入 day 的快照
	SyncDailyMetrics(ctx context.Context, day time.Time) (int, error)
	// GetPostMetrics 最近 7 或 30 天的快照序列，缺失的日期沿用前一天的数值
	GetPostMetrics(ctx context.Context, actor Actor, postID uint64, query *dto.PostMetricQuery) ([]*dto.PostMetricDTO, error)
}

type postMetricServiceImpl struct {
	postMetricRepo repository.PostMetricRepo
	postRepo       repository.PostRepo
	engagement     EngagementAggregator
	now            func() time.Time
}

func NewPostMetricService(postMetricRepo repository.PostMetricRepo, postRepo repository.PostRepo, engagement EngagementAggregator, now func() time.Time) PostMetricService {
	if now == nil {
		now = time.Now
	}
	return &postMetricServiceImpl{
		postMetricRepo: postMetricRepo,
		postRepo:       postRepo,
		engagement:     engagement,
		now:            now,
	}
}

func (s *postMetricServiceImpl) SyncDailyMetrics(ctx context.Context, day time.Time) (int, error) {
	posts, err := s.postRepo.ListRankingCandidates(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list posts: %w", err)
	}
	entries, err := s.engagement.Snapshots(ctx, posts)
	if err != nil {
		return 0, err
	}

	date := util.GetMidnight(day)
	metrics := make([]*model.PostDailyMetric, 0, len(entries))
	for _, e := range entries {
		metrics = append(metrics, &model.PostDailyMetric{
			PostID:        e.PostID,
			MetricDate:    date,
			TotalLikes:    e.Likes,
			TotalComments: e.Comments,
			TotalViews:    e.Views,
		})
	}
	if err := s.postMetricRepo.SaveOrUpdateMetrics(ctx, metrics); err != nil {
		return 0, fmt.Errorf("save post metrics: %w", err)
	}
	log.InfoContext(ctx, "post metrics synced", "date", date.Format(time.DateOnly), "posts", len(metrics))
	return len(metrics), nil
}

func (s *postMetricServiceImpl) GetPostMetrics(ctx context.Context, actor Actor, postID uint64, query *dto.PostMetricQuery) ([]*dto.PostMetricDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	days, err := parseMetricDays(query.Days)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if !actor.CanModify(post.UserID) {
		return nil, ErrNotOwner
	}

	today := util.GetMidnight(s.now())
	start := today.AddDate(0, 0, -(days - 1))
	rawData, err := s.postMetricRepo.GetPostMetricsSince(ctx, postID, start)
	if err != nil {
		return nil, fmt.Errorf("get post metrics: %w", err)
	}

	dataMap := make(map[string]*model.PostDailyMetric, len(rawData))
	for _, m := range rawData {
		dataMap[m.MetricDate.Format(time.DateOnly)] = m
	}

	res := make([]*dto.PostMetricDTO, 0, days)
	var lastValid *model.PostDailyMetric
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		if m, ok := dataMap[date]; ok {
			lastValid = m
		}
		item := &dto.PostMetricDTO{Date: date}
		if lastValid != nil {
			item.TotalLikes = lastValid.TotalLikes
			item.TotalComments = lastValid.TotalComments
			item.TotalViews = lastValid.TotalViews
		}
		res = append(res, item)
	}
	return res, nil
}

func parseMetricDays(raw string) (int, error) {
	switch strings.TrimSpace(raw) {
	case "", "7":
		return 7, nil
	case "30":
		return 30, nil
	default:
		return 0, ErrParamInvalid
	}
}
