package ranking

import "time"

const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

func within(e Entry, now time.Time, window time.Duration) bool {
	return e.Age(now) < window
}

// ListTrendingScore 列表 sort=trending 的分数：
// likes*2 + comments + views/10，7 天内发布额外 +10
func ListTrendingScore(e Entry, now time.Time) int64 {
	score := e.Likes*2 + e.Comments + e.Views/10
	if within(e, now, Week) {
		score += 10
	}
	return score
}

// TrendingScore 热门榜分数：
// likes*3 + comments*2 + views/20，7 天内 +15，24 小时内再 +10
func TrendingScore(e Entry, now time.Time) int64 {
	score := e.Likes*3 + e.Comments*2 + e.Views/20
	if within(e, now, Week) {
		score += 15
	}
	if within(e, now, Day) {
		score += 10
	}
	return score
}

// EngagementScore 精选兜底使用的互动分，不含时间加成
func EngagementScore(e Entry) int64 {
	return e.Likes*2 + e.Comments + e.Views/10
}
