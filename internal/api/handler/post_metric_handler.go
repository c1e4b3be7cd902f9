package handler

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/pkg/response"
	"Gazette/internal/service"

	"github.com/gin-gonic/gin"
)

type PostMetricHandler struct {
	postMetricSvc service.PostMetricService
}

func NewPostMetricHandler(postMetricSvc service.PostMetricService) *PostMetricHandler {
	return &PostMetricHandler{
		postMetricSvc: postMetricSvc,
	}
}

// GetPostMetrics GET /posts/:id/metrics?days=7|30
func (s *PostMetricHandler) GetPostMetrics(c *gin.Context) {
	postID, err := pathID(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.PostMetricQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	metrics, err := s.postMetricSvc.GetPostMetrics(c.Request.Context(), actorFrom(c), postID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}
