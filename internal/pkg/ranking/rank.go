package ranking

import (
	"sort"
	"time"
)

type lessFunc func(a, b Key) bool

func byCreatedDesc(a, b Key) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.PostID < b.PostID
}

func byCreatedAsc(a, b Key) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.PostID < b.PostID
}

func byScoreDesc(a, b Key) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.PostID < b.PostID
}

func byScoreThenCreatedDesc(a, b Key) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return byCreatedDesc(a, b)
}

func order(keys []Key, less lessFunc, limit int) []uint64 {
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		ids[i] = k.PostID
	}
	return ids
}

func keysOf(entries []Entry, score func(Entry) int64) []Key {
	keys := make([]Key, len(entries))
	for i, e := range entries {
		keys[i] = Key{CreatedAt: e.CreatedAt, PostID: e.PostID}
		if score != nil {
			keys[i].Score = score(e)
		}
	}
	return keys
}

// Rank 按列表排序方式返回完整的帖子 ID 顺序；主键相同时按 ID 升序
func Rank(entries []Entry, mode Mode, now time.Time) []uint64 {
	switch mode {
	case ModeOldest:
		return order(keysOf(entries, nil), byCreatedAsc, 0)
	case ModeViews:
		return order(keysOf(entries, func(e Entry) int64 { return e.Views }), byScoreDesc, 0)
	case ModeLikes:
		return order(keysOf(entries, func(e Entry) int64 { return e.Likes }), byScoreDesc, 0)
	case ModeTrending:
		return order(keysOf(entries, func(e Entry) int64 { return ListTrendingScore(e, now) }), byScoreDesc, 0)
	default:
		return order(keysOf(entries, nil), byCreatedDesc, 0)
	}
}

// RankTrending 热门榜：分数降序，同分按发布时间降序，取前 limit 个
func RankTrending(entries []Entry, now time.Time, limit int) []uint64 {
	keys := keysOf(entries, func(e Entry) int64 { return TrendingScore(e, now) })
	return order(keys, byScoreThenCreatedDesc, limit)
}

// RankByEngagement 只保留互动分大于 0 的帖子，按互动分降序
func RankByEngagement(entries []Entry, limit int) []uint64 {
	keys := make([]Key, 0, len(entries))
	for _, e := range entries {
		if score := EngagementScore(e); score > 0 {
			keys = append(keys, Key{Score: score, CreatedAt: e.CreatedAt, PostID: e.PostID})
		}
	}
	return order(keys, byScoreDesc, limit)
}

// RankImagesByPopularity 只保留带图帖子，按浏览量、点赞数降序
func RankImagesByPopularity(entries []Entry, limit int) []uint64 {
	candidates := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.HasImage {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		if a.Likes != b.Likes {
			return a.Likes > b.Likes
		}
		return a.PostID < b.PostID
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	ids := make([]uint64, len(candidates))
	for i, e := range candidates {
		ids[i] = e.PostID
	}
	return ids
}
