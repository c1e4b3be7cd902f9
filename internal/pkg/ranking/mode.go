// Package ranking 帖子排序与打分，纯函数，输入为互动快照与当前时间
package ranking

import (
	"strings"
	"time"
)

// Mode 列表排序方式
type Mode string

const (
	ModeLatest   Mode = "latest"
	ModeOldest   Mode = "oldest"
	ModeViews    Mode = "views"
	ModeLikes    Mode = "likes"
	ModeTrending Mode = "trending"
)

// ParseMode 解析 sort 参数，created_at 是 latest 的别名，未知值回退到 latest
func ParseMode(raw string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeOldest:
		return ModeOldest
	case ModeViews:
		return ModeViews
	case ModeLikes:
		return ModeLikes
	case ModeTrending:
		return ModeTrending
	default:
		return ModeLatest
	}
}

// Entry 单个帖子的互动快照，每次请求重新计算
type Entry struct {
	PostID    uint64
	CreatedAt time.Time
	Likes     int64
	Comments  int64
	Views     int64
	HasImage  bool
}

// Age 距 now 的时长，发布时间在未来时记为 0
func (e Entry) Age(now time.Time) time.Duration {
	if age := now.Sub(e.CreatedAt); age > 0 {
		return age
	}
	return 0
}

// Key 排序键，只在一次排序中使用
type Key struct {
	Score     int64
	CreatedAt time.Time
	PostID    uint64
}
