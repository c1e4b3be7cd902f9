package service

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/model"
	"Gazette/internal/pkg/consts"
	"Gazette/internal/pkg/metrics"
	"Gazette/internal/pkg/util"
	"Gazette/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostService interface {
	GetPost(ctx context.Context, postID uint64, viewer string) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, actor Actor, postDTO *dto.PostCreateDTO, image *dto.ImageUpload) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, actor Actor, postID uint64, postDTO *dto.PostUpdateDTO, image *dto.ImageUpload) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, actor Actor, postID uint64) error
}

type postServiceImpl struct {
	postRepo   repository.PostRepo
	viewRepo   repository.ViewRepo
	engagement EngagementAggregator
	images     ImageStore
}

func NewPostService(postRepo repository.PostRepo, viewRepo repository.ViewRepo, engagement EngagementAggregator, images ImageStore) PostService {
	return &postServiceImpl{
		postRepo:   postRepo,
		viewRepo:   viewRepo,
		engagement: engagement,
		images:     images,
	}
}

// GetPost 详情，同一来源对同一帖子只计一次浏览；viewer 为空时不计数
func (s *postServiceImpl) GetPost(ctx context.Context, postID uint64, viewer string) (*dto.PostDTO, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if viewer != "" {
		wasNew, err := s.viewRepo.RecordViewIfNew(ctx, postID, viewer)
		if err != nil {
			return nil, fmt.Errorf("record view: %w", err)
		}
		metrics.RecordView(wasNew)
		if wasNew {
			post.Views++
		}
	}

	entries, err := s.engagement.Snapshots(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	postDTO, err := toPostDTO(post, s.images)
	if err != nil {
		return nil, err
	}
	withEngagement(postDTO, entries[0])
	return postDTO, nil
}

// CreatePost 仅管理员可发帖
func (s *postServiceImpl) CreatePost(ctx context.Context, actor Actor, postDTO *dto.PostCreateDTO, image *dto.ImageUpload) (*dto.PostDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	post := &model.Post{
		UserID:   actor.UserID,
		Title:    postDTO.Title,
		Content:  postDTO.Content,
		Category: postDTO.Category,
	}
	if postDTO.IsFeatured != nil {
		post.IsFeatured = *postDTO.IsFeatured
	}

	if image != nil {
		key, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		post.Image = &key
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		if post.Image != nil {
			s.deleteImage(ctx, *post.Image)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	log.InfoContext(ctx, "post created", "post_id", post.ID, "user_id", actor.UserID)

	return s.reload(ctx, post.ID)
}

// UpdatePost 作者或管理员可修改；is_featured 只有管理员能改，其他人传入时忽略
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor Actor, postID uint64, postDTO *dto.PostUpdateDTO, image *dto.ImageUpload) (*dto.PostDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(post.UserID) {
		return nil, ErrNotOwner
	}

	post.Title = postDTO.Title
	post.Content = postDTO.Content
	if postDTO.Category != "" {
		post.Category = postDTO.Category
	}
	if postDTO.IsFeatured != nil && actor.IsAdmin() {
		post.IsFeatured = *postDTO.IsFeatured
	}

	var oldImage *string
	if image != nil {
		key, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		oldImage = post.Image
		post.Image = &key
	}

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		if image != nil {
			s.deleteImage(ctx, *post.Image)
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	if oldImage != nil && *oldImage != "" {
		s.deleteImage(ctx, *oldImage)
	}

	return s.reload(ctx, post.ID)
}

// DeletePost 作者或管理员可删除，同时清理图片与关联数据
func (s *postServiceImpl) DeletePost(ctx context.Context, actor Actor, postID uint64) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if !actor.CanModify(post.UserID) {
		return ErrNotOwner
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if post.Image != nil && *post.Image != "" {
		s.deleteImage(ctx, *post.Image)
	}
	log.InfoContext(ctx, "post deleted", "post_id", postID, "user_id", actor.UserID)
	return nil
}

func (s *postServiceImpl) getPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *postServiceImpl) reload(ctx context.Context, postID uint64) (*dto.PostDTO, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post, s.images)
}

// storeImage 校验大小与真实类型后上传，返回对象 key
func (s *postServiceImpl) storeImage(ctx context.Context, image *dto.ImageUpload) (string, error) {
	if image.Size > consts.MaxImageSize {
		return "", ErrImageTooLarge
	}
	contentType, reader, err := util.SniffImage(image.Reader)
	if err != nil {
		if errors.Is(err, util.ErrImageType) {
			return "", ErrImageInvalid
		}
		return "", fmt.Errorf("read image: %w", err)
	}
	if s.images == nil {
		return "", fmt.Errorf("image store is not configured")
	}

	ext := ""
	if mime := mimetype.Lookup(contentType); mime != nil {
		ext = mime.Extension()
	}
	objectName := fmt.Sprintf("%s%s/%s%s", consts.ImageObjectPrefix, time.Now().Format("20060102"), uuid.NewString(), ext)
	key, err := s.images.Upload(ctx, objectName, reader, image.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return key, nil
}

// deleteImage 图片清理失败只记日志，不影响主流程
func (s *postServiceImpl) deleteImage(ctx context.Context, key string) {
	if s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		log.WarnContext(ctx, "delete post image failed", "key", key, "err", err)
	}
}
