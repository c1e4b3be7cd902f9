package service

import (
	"Gazette/internal/api/config"
	"Gazette/internal/api/dto"
	"Gazette/internal/model"
	"Gazette/internal/pkg/util"
	"Gazette/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"gorm.io/gorm"
)

type PostActionService interface {
	ToggleLike(ctx context.Context, actor Actor, postID uint64) (*dto.LikeStateDTO, error)
	LikeState(ctx context.Context, actor Actor, postID uint64) (*dto.LikeStateDTO, error)
	ListComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
	CreateComment(ctx context.Context, actor Actor, postID uint64, commentDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, actor Actor, postID, commentID uint64) error
	ListAllComments(ctx context.Context, actor Actor, query *dto.CommentListQuery) (*dto.CommentPageDTO, error)
}

type postActionServiceImpl struct {
	postRepo       repository.PostRepo
	postActionRepo repository.PostActionRepo
	engagementRepo repository.EngagementRepo
	cfg            config.FeedConfig
}

func NewPostActionService(postRepo repository.PostRepo, postActionRepo repository.PostActionRepo, engagementRepo repository.EngagementRepo, cfg config.FeedConfig) PostActionService {
	return &postActionServiceImpl{
		postRepo:       postRepo,
		postActionRepo: postActionRepo,
		engagementRepo: engagementRepo,
		cfg:            cfg,
	}
}

// ToggleLike 点赞/取消点赞，返回操作后的状态与点赞总数
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, actor Actor, postID uint64) (*dto.LikeStateDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postActionRepo.ToggleLike(ctx, actor.UserID, postID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	counts, err := s.engagementRepo.CountLikes(ctx, []uint64{postID})
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &dto.LikeStateDTO{Liked: liked, LikeCount: counts[postID]}, nil
}

// LikeState 当前用户是否已点赞
func (s *postActionServiceImpl) LikeState(ctx context.Context, actor Actor, postID uint64) (*dto.LikeStateDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.postActionRepo.CheckLikeExists(ctx, actor.UserID, postID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}
	counts, err := s.engagementRepo.CountLikes(ctx, []uint64{postID})
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &dto.LikeStateDTO{Liked: liked, LikeCount: counts[postID]}, nil
}

func (s *postActionServiceImpl) ListComments(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.postActionRepo.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return toCommentDTOs(comments)
}

func (s *postActionServiceImpl) CreateComment(ctx context.Context, actor Actor, postID uint64, commentDTO *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(commentDTO.Content)
	if content == "" {
		return nil, ErrValidation
	}
	comment := &model.Comment{
		PostID:  postID,
		UserID:  actor.UserID,
		Content: content,
	}
	if err := s.postActionRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	saved, err := s.postActionRepo.GetCommentByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return toCommentDTO(saved)
}

// DeleteComment 评论作者或管理员可删除，评论必须属于该帖子
func (s *postActionServiceImpl) DeleteComment(ctx context.Context, actor Actor, postID, commentID uint64) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}
	comment, err := s.postActionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("get comment: %w", err)
	}
	if comment.PostID != postID {
		return ErrCommentNotFound
	}
	if !actor.CanModify(comment.UserID) {
		return ErrNotOwner
	}

	if err := s.postActionRepo.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	log.InfoContext(ctx, "comment deleted", "comment_id", commentID, "post_id", postID, "user_id", actor.UserID)
	return nil
}

// ListAllComments 后台审核列表，最新的在前
func (s *postActionServiceImpl) ListAllComments(ctx context.Context, actor Actor, query *dto.CommentListQuery) (*dto.CommentPageDTO, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	page := util.ParsePositiveInt(query.Page, 1)
	perPage := util.ParsePositiveInt(query.PerPage, s.cfg.DefaultPageSize)
	if s.cfg.MaxPageSize > 0 && perPage > s.cfg.MaxPageSize {
		perPage = s.cfg.MaxPageSize
	}

	total, err := s.postActionRepo.CountComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	p := util.Paginate(int(total), page, perPage)

	data := make([]*dto.CommentDTO, 0)
	if p.Limit > 0 {
		comments, err := s.postActionRepo.GetComments(ctx, p.Limit, p.Offset)
		if err != nil {
			return nil, fmt.Errorf("list comments: %w", err)
		}
		if data, err = toCommentDTOs(comments); err != nil {
			return nil, err
		}
	}
	return &dto.CommentPageDTO{
		Data:        data,
		CurrentPage: page,
		LastPage:    p.LastPage,
		Total:       total,
	}, nil
}

func (s *postActionServiceImpl) ensurePost(ctx context.Context, postID uint64) error {
	if _, err := s.postRepo.GetPost(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("get post: %w", err)
	}
	return nil
}

func toCommentDTOs(comments []*model.Comment) ([]*dto.CommentDTO, error) {
	result := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		commentDTO, err := toCommentDTO(comment)
		if err != nil {
			return nil, err
		}
		result = append(result, commentDTO)
	}
	return result, nil
}
