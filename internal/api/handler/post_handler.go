package handler

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/pkg/response"
	"Gazette/internal/pkg/util"
	"Gazette/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	feedSvc service.FeedService
	postSvc service.PostService
}

func NewPostHandler(feedSvc service.FeedService, postSvc service.PostService) *PostHandler {
	return &PostHandler{
		feedSvc: feedSvc,
		postSvc: postSvc,
	}
}

// ListPosts GET /posts?page=&per_page=&sort=&category=
func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.feedSvc.ListPosts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, page)
}

// GetPost 详情，按来源 IP 计一次浏览
func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), postID, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) Trending(c *gin.Context) {
	posts, err := s.feedSvc.Trending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, posts)
}

func (s *PostHandler) Featured(c *gin.Context) {
	posts, err := s.feedSvc.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, posts)
}

func (s *PostHandler) Categories(c *gin.Context) {
	categories, err := s.feedSvc.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Raw(c, categories)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	image, closeImage, err := imageUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeImage()

	post, err := s.postSvc.CreatePost(c.Request.Context(), actorFrom(c), &req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Post(c, http.StatusCreated, post, "")
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.PostUpdateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	image, closeImage, err := imageUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeImage()

	post, err := s.postSvc.UpdatePost(c.Request.Context(), actorFrom(c), postID, &req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Post(c, http.StatusOK, post, "Post updated successfully.")
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), actorFrom(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Post deleted successfully.")
}
