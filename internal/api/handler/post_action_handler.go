package handler

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/pkg/response"
	"Gazette/internal/pkg/util"
	"Gazette/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
}

func NewPostActionHandler(postActionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		postActionSvc: postActionSvc,
	}
}

func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := s.postActionSvc.ToggleLike(c.Request.Context(), actorFrom(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostActionHandler) LikeState(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := s.postActionSvc.LikeState(c.Request.Context(), actorFrom(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostActionHandler) ListComments(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.postActionSvc.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CommentCreateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.postActionSvc.CreateComment(c.Request.Context(), actorFrom(c), postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *PostActionHandler) DeleteComment(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	commentID, err := pathID(c, "comment_id", service.ErrCommentNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postActionSvc.DeleteComment(c.Request.Context(), actorFrom(c), postID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Comment deleted successfully.")
}

// ListAllComments 后台评论审核列表
func (s *PostActionHandler) ListAllComments(c *gin.Context) {
	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.postActionSvc.ListAllComments(c.Request.Context(), actorFrom(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, page)
}
