package database

import (
	"Gazette/internal/model"
	"fmt"

	"gorm.io/gorm"
)

// Migrate 同步表结构，post_views 上的 (post_id, viewer) 唯一索引是浏览去重的依据
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.PostView{},
		&model.PostDailyMetric{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
