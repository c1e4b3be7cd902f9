package handler

import (
	"Gazette/internal/api/middleware"
	"Gazette/internal/pkg/response"
	"Gazette/internal/pkg/security"
	"Gazette/internal/service"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	revoker security.TokenRevoker
}

func NewSessionHandler(revoker security.TokenRevoker) *SessionHandler {
	return &SessionHandler{
		revoker: revoker,
	}
}

// Logout 把当前 token 加入注销列表，保留到 token 自然过期
func (s *SessionHandler) Logout(c *gin.Context) {
	signature, err := security.ExtractSignature(c.GetString(middleware.ContextToken))
	if err != nil {
		response.Error(c, service.ErrUnauthenticated)
		return
	}
	claims, _ := c.Get(middleware.ContextClaims)
	userClaims, _ := claims.(*security.UserClaims)

	if ttl := security.RemainingTTL(userClaims, time.Now()); ttl > 0 && s.revoker != nil {
		if err := s.revoker.Revoke(c.Request.Context(), signature, ttl); err != nil {
			response.Error(c, err)
			return
		}
	}
	log.InfoContext(c.Request.Context(), "user logged out", "user_id", c.GetUint64(middleware.ContextUserID))
	response.Message(c, "Logged out successfully.")
}
