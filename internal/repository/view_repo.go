package repository

import (
	"Gazette/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ViewRepo interface {
	RecordViewIfNew(ctx context.Context, postID uint64, viewer string) (bool, error)
}

type viewRepoImpl struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) ViewRepo {
	return &viewRepoImpl{db: db}
}

// RecordViewIfNew 写入 (post_id, viewer) 浏览记录，只有插入真正生效时才给 posts.views 加 1。
// 两步在同一事务里；并发的重复插入被唯一索引拦下，按"已存在"处理。
func (s *viewRepoImpl) RecordViewIfNew(ctx context.Context, postID uint64, viewer string) (bool, error) {
	wasNew := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := &model.PostView{PostID: postID, Viewer: viewer, CreatedAt: time.Now()}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "viewer"}},
			DoNothing: true,
		}).Create(view)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		res = tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		wasNew = true
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return wasNew, nil
}
