package security

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenRevoker 维护已注销的 token，key 为 token 签名
type TokenRevoker interface {
	IsRevoked(ctx context.Context, signature string) (bool, error)
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
}
