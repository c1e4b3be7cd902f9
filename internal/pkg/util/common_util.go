package util

import (
	"strconv"
	"strings"
	"time"
)

// ParseID 解析路径中的数字 ID，非法或为 0 时返回 false
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// ChunkUint64 按 size 切分，用于控制 IN 查询的参数个数
func ChunkUint64(ids []uint64, size int) [][]uint64 {
	if size <= 0 || len(ids) <= size {
		if len(ids) == 0 {
			return nil
		}
		return [][]uint64{ids}
	}
	chunks := make([][]uint64, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// GetMidnight t 所在日期的零点，保留时区
func GetMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
