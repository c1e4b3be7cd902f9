package middleware

import (
	"Gazette/internal/pkg/response"
	"Gazette/internal/pkg/security"
	"Gazette/internal/service"
	log "log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
	ContextToken  = "token"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(revoker security.TokenRevoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, service.ErrUnauthenticated)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Error(c, service.ErrUnauthenticated)
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), signature)
			if err != nil {
				log.ErrorContext(c.Request.Context(), "check token revocation failed", "err", err)
				response.Fail(c, http.StatusInternalServerError, service.UnExpectedError.Error(), nil)
				return
			}
			if revoked {
				response.Error(c, service.ErrUnauthenticated)
				return
			}
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Error(c, service.ErrUnauthenticated)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Set(ContextToken, tokenString)
		c.Next()
	}
}
