package model

import (
	"time"
)

// PostView 一条 (帖子, 访客) 浏览记录，同一对只允许存在一条
type PostView struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_post_viewer,priority:1"`
	Viewer    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_post_viewer,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PostView) TableName() string {
	return "post_views"
}
