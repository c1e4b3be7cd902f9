package job

import (
	"Gazette/internal/pkg/consts"
	"Gazette/internal/pkg/logger"
	"Gazette/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// lockTTL 快照任务持锁上限，多实例部署时只有一个实例执行
const lockTTL = 10 * time.Minute

// Locker 分布式锁，release 释放锁
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

type PostMetricsJob struct {
	postMetricSvc service.PostMetricService
	locker        Locker
	now           func() time.Time
}

func NewPostMetricsJob(postMetricSvc service.PostMetricService, locker Locker) *PostMetricsJob {
	return &PostMetricsJob{
		postMetricSvc: postMetricSvc,
		locker:        locker,
		now:           time.Now,
	}
}

// Run 每日零点执行，快照记在前一天
func (s *PostMetricsJob) Run() {
	traceID := "job-post-" + uuid.NewString()
	ctx := logger.WithTraceID(context.Background(), traceID)
	s.runAt(ctx, s.now().AddDate(0, 0, -1))
}

func (s *PostMetricsJob) runAt(ctx context.Context, day time.Time) {
	if s.locker != nil {
		release, ok, err := s.locker.Acquire(ctx, consts.PostMetricsJobLock, lockTTL)
		if err != nil {
			log.ErrorContext(ctx, "acquire post metrics lock error", "err", err)
			return
		}
		if !ok {
			log.InfoContext(ctx, "post metrics job is running elsewhere, skip")
			return
		}
		defer release()
	}

	count, err := s.postMetricSvc.SyncDailyMetrics(ctx, day)
	if err != nil {
		log.ErrorContext(ctx, "sync post daily metrics error", "err", err)
		return
	}
	log.InfoContext(ctx, "sync post metrics success", "post_count", count)
}
