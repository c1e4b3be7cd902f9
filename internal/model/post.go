package model

import (
	"time"
)

type Post struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index:idx_post_user" json:"user_id"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Content    string    `gorm:"type:longtext;not null" json:"content"`
	Category   string    `gorm:"type:varchar(32);not null;index:idx_post_category" json:"category"`
	Views      int64     `gorm:"not null;default:0" json:"views"` // 只增不减，由浏览记录驱动
	IsFeatured bool      `gorm:"not null;default:false;index:idx_post_featured" json:"is_featured"`
	Image      *string   `gorm:"type:varchar(512)" json:"image"` // 对象存储中的 key
	CreatedAt  time.Time `gorm:"index:idx_post_created" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
