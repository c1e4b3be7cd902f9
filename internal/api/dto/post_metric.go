package dto

// PostMetricDTO 单日快照
type PostMetricDTO struct {
	Date          string `json:"date"`
	TotalLikes    int64  `json:"total_likes"`
	TotalComments int64  `json:"total_comments"`
	TotalViews    int64  `json:"total_views"`
}

// PostMetricQuery days 只接受 7 或 30
type PostMetricQuery struct {
	Days string `form:"days"`
}
