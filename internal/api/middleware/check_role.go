package middleware

import (
	"Gazette/internal/pkg/response"
	"Gazette/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有指定角色之一，需在 AuthMiddleware 之后使用
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(requiredRoles, c.GetString(ContextRole)) {
			response.Error(c, service.ErrForbidden)
			return
		}
		c.Next()
	}
}
