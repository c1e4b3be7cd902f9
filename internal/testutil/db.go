// Package testutil 测试用的数据库与数据构造工具
package testutil

import (
	"Gazette/internal/api/config"
	"Gazette/internal/model"
	"Gazette/internal/pkg/database"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"
)

// NewDB 基于内存 SQLite 创建已迁移的数据库，测试结束时关闭
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDB(&config.DBConfig{
		DSN:      "sqlite://:memory:",
		MaxIdle:  1,
		MaxOpen:  1,
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser 写入一个用户，email 由 name 生成
func CreateUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()
	user := &model.User{
		Name:  name,
		Email: fmt.Sprintf("%s@gazette.test", name),
		Role:  role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// PostSeed 构造帖子的参数，零值字段使用默认值
type PostSeed struct {
	UserID     uint64
	Title      string
	Category   string
	Views      int64
	IsFeatured bool
	Image      string
	CreatedAt  time.Time
}

func CreatePost(t *testing.T, db *gorm.DB, seed PostSeed) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:     seed.UserID,
		Title:      seed.Title,
		Content:    "content of " + seed.Title,
		Category:   seed.Category,
		Views:      seed.Views,
		IsFeatured: seed.IsFeatured,
		CreatedAt:  seed.CreatedAt,
	}
	if post.Title == "" {
		post.Title = "untitled"
	}
	if post.Category == "" {
		post.Category = "news"
	}
	if seed.Image != "" {
		image := seed.Image
		post.Image = &image
	}
	if err := db.Omit("User").Create(post).Error; err != nil {
		t.Fatalf("create post %s: %v", post.Title, err)
	}
	return post
}

// AddLikes 给帖子添加 n 个点赞，点赞用户 ID 从 firstUserID 起连续分配
func AddLikes(t *testing.T, db *gorm.DB, postID uint64, firstUserID uint64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		like := &model.Like{UserID: firstUserID + uint64(i), PostID: postID}
		if err := db.Create(like).Error; err != nil {
			t.Fatalf("add like: %v", err)
		}
	}
}

// AddComments 以 userID 的身份给帖子添加 n 条评论
func AddComments(t *testing.T, db *gorm.DB, postID, userID uint64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		comment := &model.Comment{PostID: postID, UserID: userID, Content: fmt.Sprintf("comment %d", i)}
		if err := db.Omit("User").Create(comment).Error; err != nil {
			t.Fatalf("add comment: %v", err)
		}
	}
}
