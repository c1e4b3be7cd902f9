package wire

import (
	"Gazette/internal/api"
	"Gazette/internal/api/config"
	"Gazette/internal/api/handler"
	"Gazette/internal/api/middleware"
	"Gazette/internal/job"
	"Gazette/internal/pkg/cron"
	"Gazette/internal/pkg/security"
	"Gazette/internal/repository"
	"Gazette/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies 外部基础设施，测试时可替换为内存实现
type Dependencies struct {
	Images  service.ImageStore
	Revoker security.TokenRevoker
	Locker  job.Locker
	Now     func() time.Time
}

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router         *gin.Engine
	DB             *gorm.DB
	CronMgr        *cron.Manager
	CommentLimiter *middleware.IPRateLimiter
}

func BuildApplication(db *gorm.DB, cfg *config.Config, deps Dependencies) (*ApplicationContainer, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	postRepo := repository.NewPostRepository(db)
	viewRepo := repository.NewViewRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	postActionRepo := repository.NewPostActionRepo(db)
	postMetricRepo := repository.NewPostMetricRepository(db)

	engagement := service.NewEngagementAggregator(engagementRepo)
	feedService := service.NewFeedService(postRepo, engagement, deps.Images, cfg.Feed, now)
	postService := service.NewPostService(postRepo, viewRepo, engagement, deps.Images)
	postActionService := service.NewPostActionService(postRepo, postActionRepo, engagementRepo, cfg.Feed)
	postMetricService := service.NewPostMetricService(postMetricRepo, postRepo, engagement, now)

	handlers := &api.HandlersGroup{
		PostHandler:       handler.NewPostHandler(feedService, postService),
		PostActionHandler: handler.NewPostActionHandler(postActionService),
		PostMetricHandler: handler.NewPostMetricHandler(postMetricService),
		SessionHandler:    handler.NewSessionHandler(deps.Revoker),
	}

	var commentLimiter *middleware.IPRateLimiter
	if cfg.RateLimit.CommentRPS > 0 {
		commentLimiter = middleware.NewIPRateLimiter(cfg.RateLimit.CommentRPS, cfg.RateLimit.CommentBurst)
	}

	router := api.SetupRouter(cfg, handlers, api.RouterDeps{
		Revoker:        deps.Revoker,
		CommentLimiter: commentLimiter,
	})

	postMetricsJob := job.NewPostMetricsJob(postMetricService, deps.Locker)

	return &ApplicationContainer{
		Router:         router,
		DB:             db,
		CronMgr:        cron.NewCronManager(postMetricsJob),
		CommentLimiter: commentLimiter,
	}, nil
}
