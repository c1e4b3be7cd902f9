package api

import (
	"Gazette/internal/api/config"
	"Gazette/internal/api/middleware"
	"Gazette/internal/pkg/consts"
	"Gazette/internal/pkg/logger"
	"Gazette/internal/pkg/security"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps 路由需要的中间件依赖
type RouterDeps struct {
	Revoker        security.TokenRevoker
	CommentLimiter *middleware.IPRateLimiter
}

func SetupRouter(cfg *config.Config, group *HandlersGroup, deps RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Warn("set trusted proxies failed", "err", err)
	}
	// 超过 32MB 的部分落盘
	r.MaxMultipartMemory = 32 << 20

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS))
	r.Use(middleware.MetricsMiddleware())
	logger.SetupGin(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.AuthMiddleware(deps.Revoker)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "pong",
			})
		})

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/trending", group.PostHandler.Trending)
			postGroup.GET("/featured", group.PostHandler.Featured)
			postGroup.GET("/categories", group.PostHandler.Categories)
			postGroup.GET("/:id", group.PostHandler.GetPost)
			postGroup.GET("/:id/comments", group.PostActionHandler.ListComments)

			authGroup := postGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:id", group.PostHandler.UpdatePost)
				authGroup.DELETE("/:id", group.PostHandler.DeletePost)
				authGroup.GET("/:id/like", group.PostActionHandler.LikeState)
				authGroup.POST("/:id/like", group.PostActionHandler.ToggleLike)
				authGroup.DELETE("/:id/comments/:comment_id", group.PostActionHandler.DeleteComment)
				authGroup.GET("/:id/metrics", group.PostMetricHandler.GetPostMetrics)

				if deps.CommentLimiter != nil {
					authGroup.POST("/:id/comments", middleware.RateLimitMiddleware(deps.CommentLimiter), group.PostActionHandler.CreateComment)
				} else {
					authGroup.POST("/:id/comments", group.PostActionHandler.CreateComment)
				}
			}
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("")
		adminGroup.Use(auth, middleware.CheckRoles(consts.RoleAdmin))
		{
			adminGroup.GET("/comments", group.PostActionHandler.ListAllComments)
		}

		sessionGroup := apiGroup.Group("/auth")
		sessionGroup.Use(auth)
		{
			sessionGroup.POST("/logout", group.SessionHandler.Logout)
		}
	}

	return r
}
