package repository

import (
	"Gazette/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostMetricRepo interface {
	SaveOrUpdateMetrics(ctx context.Context, metrics []*model.PostDailyMetric) error
	GetPostMetricsSince(ctx context.Context, postID uint64, since time.Time) ([]*model.PostDailyMetric, error)
}

type postMetricRepoImpl struct {
	db *gorm.DB
}

func NewPostMetricRepository(db *gorm.DB) PostMetricRepo {
	return &postMetricRepoImpl{db: db}
}

// SaveOrUpdateMetrics 采用 Upsert 逻辑。如果 post_id + metric_date 已存在，则更新各项数值
func (r *postMetricRepoImpl) SaveOrUpdateMetrics(ctx context.Context, metrics []*model.PostDailyMetric) error {
	if len(metrics) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_likes",
			"total_comments",
			"total_views",
			"updated_at",
		}),
	}).CreateInBatches(metrics, 200).Error
}

// GetPostMetricsSince 获取帖子自 since（含）以来的每日快照
func (r *postMetricRepoImpl) GetPostMetricsSince(ctx context.Context, postID uint64, since time.Time) ([]*model.PostDailyMetric, error) {
	metrics := make([]*model.PostDailyMetric, 0)
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND metric_date >= ?", postID, since).
		Order("metric_date ASC").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
