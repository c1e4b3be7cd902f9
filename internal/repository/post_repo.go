package repository

import (
	"Gazette/internal/model"
	"context"

	"gorm.io/gorm"
)

// rankingColumns 排序只需要的列，避免为整个候选集加载正文
var rankingColumns = []string{"id", "user_id", "category", "views", "is_featured", "image", "created_at"}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
	ListRankingCandidates(ctx context.Context, category string) ([]*model.Post, error)
	ListFeatured(ctx context.Context, limit int) ([]*model.Post, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Omit("User").Create(post).Error
}

// GetPost 不存在时返回 gorm.ErrRecordNotFound
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByIds 批量获取，不保证顺序
func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost 只更新可编辑字段，views 由浏览记录单独维护
func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Model(post).
		Select("title", "content", "category", "is_featured", "image", "updated_at").
		Updates(post).Error
}

// DeletePost 删除帖子及其点赞、评论、浏览记录与指标快照
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&model.Like{}, &model.Comment{}, &model.PostView{}, &model.PostDailyMetric{}} {
			if err := tx.Where("post_id = ?", id).Delete(dependent).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListRankingCandidates 按分类筛选出全部候选帖子，category 为空时不筛选
func (s *PostRepoImpl) ListRankingCandidates(ctx context.Context, category string) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).Model(&model.Post{}).Select(rankingColumns)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListFeatured 人工精选帖子，按发布时间降序
func (s *PostRepoImpl) ListFeatured(ctx context.Context, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).Preload("User").
		Where("is_featured = ?", true).
		Order("created_at DESC").Order("id ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListCategories 已使用的分类，按字母序
func (s *PostRepoImpl) ListCategories(ctx context.Context) ([]string, error) {
	categories := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
