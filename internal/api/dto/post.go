package dto

import (
	"io"
	"time"
)

// AuthorDTO 作者摘要
type AuthorDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PostDTO 帖子，like_count/comment_count 只在聚合过互动数据时出现
type PostDTO struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Views        int64     `json:"views"`
	IsFeatured   bool      `json:"is_featured"`
	Image        *string   `json:"image"`
	ImageURL     *string   `json:"image_url"`
	UserID       uint64    `json:"user_id"`
	Author       AuthorDTO `json:"user"`
	LikeCount    *int64    `json:"like_count,omitempty"`
	CommentCount *int64    `json:"comment_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PostListQuery 列表查询参数，按字符串接收以便非法值回退到默认值
type PostListQuery struct {
	Page     string `form:"page"`
	PerPage  string `form:"per_page"`
	Sort     string `form:"sort"`
	Category string `form:"category"`
}

// PostPageDTO 分页结果
type PostPageDTO struct {
	Data        []*PostDTO `json:"data"`
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	Total       int64      `json:"total"`
}

// CategoriesDTO 分类列表
type CategoriesDTO struct {
	Categories []string `json:"categories"`
}

// PostCreateDTO 新建帖子（multipart 表单）
type PostCreateDTO struct {
	Title      string `form:"title" validate:"required,max=255"`
	Content    string `form:"content" validate:"required,max=250000"`
	Category   string `form:"category" validate:"required,oneof=news review podcast opinion lifestyle"`
	IsFeatured *bool  `form:"is_featured"`
}

// PostUpdateDTO 修改帖子，category 与 is_featured 可省略
type PostUpdateDTO struct {
	Title      string `form:"title" validate:"required,max=255"`
	Content    string `form:"content" validate:"required,max=250000"`
	Category   string `form:"category" validate:"omitempty,oneof=news review podcast opinion lifestyle"`
	IsFeatured *bool  `form:"is_featured"`
}

// ImageUpload 上传的图片文件
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}
