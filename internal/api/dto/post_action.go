package dto

import "time"

// LikeStateDTO 点赞切换后的状态
type LikeStateDTO struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// CommentCreateDTO 发表评论
type CommentCreateDTO struct {
	Content string `json:"content" form:"content" validate:"required,max=2000"`
}

// CommentDTO 评论
type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Content   string    `json:"content"`
	Author    AuthorDTO `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentListQuery 后台评论列表参数
type CommentListQuery struct {
	Page    string `form:"page"`
	PerPage string `form:"per_page"`
}

// CommentPageDTO 评论分页结果
type CommentPageDTO struct {
	Data        []*CommentDTO `json:"data"`
	CurrentPage int           `json:"current_page"`
	LastPage    int           `json:"last_page"`
	Total       int64         `json:"total"`
}
