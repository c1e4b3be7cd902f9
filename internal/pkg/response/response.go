package response

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/pkg/util"
	"Gazette/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    data,
	})
}

// Raw 直接返回 payload，列表类接口使用
func Raw(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Post 新建或修改帖子后的返回
func Post(c *gin.Context, status int, post any, message string) {
	c.JSON(status, dto.Response{
		Success: true,
		Post:    post,
		Message: message,
	})
}

// Message 只带提示信息的成功返回
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: message,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string, fieldErrors map[string][]string) {
	c.AbortWithStatusJSON(status, dto.Response{
		Success: false,
		Error:   message,
		Errors:  fieldErrors,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusUnprocessableEntity, service.ErrValidation.Error(), util.ValidationMessages(err))
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusUnprocessableEntity, service.ErrParamInvalid.Error(), nil)
		return
	}

	for sentinel, code := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			Fail(c, code, sentinel.Error(), nil)
			return
		}
	}

	log.ErrorContext(c.Request.Context(), "Error", "err", err)
	Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error(), nil)
}
