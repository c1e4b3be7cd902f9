package service

import (
	"Gazette/internal/api/config"
	"Gazette/internal/repository"
	"Gazette/internal/testutil"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeImageStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{objects: make(map[string][]byte)}
}

func (f *fakeImageStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = data
	return objectName, nil
}

func (f *fakeImageStore) Delete(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[objectName]; !ok {
		return fmt.Errorf("object %s not found", objectName)
	}
	delete(f.objects, objectName)
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeImageStore) PublicURL(objectName string) string {
	return "http://images.test/gazette/" + objectName
}

func (f *fakeImageStore) has(objectName string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[objectName]
	return ok
}

type fixture struct {
	db      *gorm.DB
	images  *fakeImageStore
	feed    FeedService
	posts   PostService
	actions PostActionService
	metrics PostMetricService
}

func testFeedConfig() config.FeedConfig {
	return config.FeedConfig{
		DefaultPageSize: 10,
		MaxPageSize:     100,
		FeaturedLimit:   5,
		TrendingLimit:   10,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	images := newFakeImageStore()
	clock := func() time.Time { return testNow }

	postRepo := repository.NewPostRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	engagement := NewEngagementAggregator(engagementRepo)

	return &fixture{
		db:      db,
		images:  images,
		feed:    NewFeedService(postRepo, engagement, images, testFeedConfig(), clock),
		posts:   NewPostService(postRepo, repository.NewViewRepository(db), engagement, images),
		actions: NewPostActionService(postRepo, repository.NewPostActionRepo(db), engagementRepo, testFeedConfig()),
		metrics: NewPostMetricService(repository.NewPostMetricRepository(db), postRepo, engagement, clock),
	}
}

func daysAgo(n float64) time.Time {
	return testNow.Add(-time.Duration(n * float64(24*time.Hour)))
}
