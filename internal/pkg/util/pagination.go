package util

import (
	"strconv"
	"strings"
)

// ParsePositiveInt 解析查询参数，空值、非数字或非正数都回退到 def
func ParsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Page 偏移分页的计算结果
type Page struct {
	Offset   int
	Limit    int
	LastPage int
}

// Paginate 计算 offset/limit 与末页页码，末页至少为 1；页码越界时 Limit 为 0
func Paginate(total, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 1
	}
	if page <= 0 {
		page = 1
	}
	pages := (total + perPage - 1) / perPage
	lastPage := max(pages, 1)
	if page > pages {
		return Page{Offset: total, Limit: 0, LastPage: lastPage}
	}
	offset := (page - 1) * perPage
	return Page{
		Offset:   offset,
		Limit:    min(perPage, total-offset),
		LastPage: lastPage,
	}
}
