package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Locker 为定时任务提供跨实例互斥
type Locker struct{}

func NewLocker() *Locker {
	return &Locker{}
}

// Acquire 尝试一次加锁，成功时返回释放函数
func (s *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := TryLock(ctx, key, token, ttl, 0)
	if err != nil || !ok {
		return nil, ok, err
	}
	return func() {
		_ = UnLock(context.Background(), key, token)
	}, true, nil
}
