package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_comment_post"`
	UserID    uint64    `gorm:"not null;index:idx_comment_user"`
	Content   string    `gorm:"type:varchar(2000);not null"`
	CreatedAt time.Time `gorm:"index:idx_comment_created"`
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
