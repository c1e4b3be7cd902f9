package model

import (
	"time"
)

// PostDailyMetric 每日快照，记录当日结束时的累计互动数
type PostDailyMetric struct {
	ID            uint64    `gorm:"primaryKey"`
	PostID        uint64    `gorm:"not null;uniqueIndex:idx_post_date,priority:1"`
	MetricDate    time.Time `gorm:"type:date;not null;uniqueIndex:idx_post_date,priority:2;column:metric_date"`
	TotalLikes    int64     `gorm:"not null;default:0"`
	TotalComments int64     `gorm:"not null;default:0"`
	TotalViews    int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PostDailyMetric) TableName() string {
	return "post_daily_metrics"
}
