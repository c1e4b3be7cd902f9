package repository

import (
	"Gazette/internal/model"
	"Gazette/internal/pkg/util"
	"context"

	"gorm.io/gorm"
)

// inChunkSize 单条 IN 查询的参数上限
const inChunkSize = 500

type EngagementRepo interface {
	CountLikes(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
	CountComments(ctx context.Context, postIDs []uint64) (map[uint64]int64, error)
}

type engagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepo {
	return &engagementRepoImpl{db: db}
}

type postCount struct {
	PostID uint64
	Total  int64
}

// CountLikes 按帖子统计点赞数，没有点赞的帖子不出现在结果里
func (s *engagementRepoImpl) CountLikes(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return s.countBy(ctx, &model.Like{}, postIDs)
}

// CountComments 按帖子统计评论数
func (s *engagementRepoImpl) CountComments(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	return s.countBy(ctx, &model.Comment{}, postIDs)
}

func (s *engagementRepoImpl) countBy(ctx context.Context, table any, postIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(postIDs))
	for _, chunk := range util.ChunkUint64(postIDs, inChunkSize) {
		var rows []postCount
		err := s.db.WithContext(ctx).Model(table).
			Select("post_id, COUNT(*) AS total").
			Where("post_id IN ?", chunk).
			Group("post_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			counts[row.PostID] = row.Total
		}
	}
	return counts, nil
}
