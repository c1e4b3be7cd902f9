package wire

import (
	"Gazette/internal/api/config"
	"Gazette/internal/model"
	"Gazette/internal/pkg/security"
	"Gazette/internal/testutil"
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (r *memoryRevoker) IsRevoked(_ context.Context, signature string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[signature]
	return ok, nil
}

func (r *memoryRevoker) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[signature] = ttl
	return nil
}

type memoryImages struct{}

func (memoryImages) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	_, err := io.Copy(io.Discard, reader)
	return objectName, err
}

func (memoryImages) Delete(context.Context, string) error { return nil }

func (memoryImages) PublicURL(objectName string) string { return "http://images.test/" + objectName }

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestApp(t *testing.T, mutate func(cfg *config.Config)) *testApp {
	t.Helper()
	cfg := config.Default()
	cfg.Server.TrustedProxies = nil
	if mutate != nil {
		mutate(cfg)
	}
	security.Configure(cfg.JWT)

	db := testutil.NewDB(t)
	app, err := BuildApplication(db, cfg, Dependencies{
		Images:  memoryImages{},
		Revoker: &memoryRevoker{revoked: make(map[string]time.Duration)},
	})
	if err != nil {
		t.Fatalf("build application: %v", err)
	}
	return &testApp{db: db, router: app.Router}
}

type request struct {
	method      string
	path        string
	remoteAddr  string
	token       string
	body        io.Reader
	contentType string
}

func (a *testApp) do(t *testing.T, r request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(r.method, r.path, r.body)
	if r.remoteAddr != "" {
		req.RemoteAddr = r.remoteAddr
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var body map[string]any
	if strings.HasPrefix(w.Body.String(), "{") {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, body
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func multipartBody(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestPing(t *testing.T) {
	app := newTestApp(t, nil)
	w, body := app.do(t, request{method: http.MethodGet, path: "/api/ping"})
	if w.Code != http.StatusOK || body["message"] != "pong" {
		t.Fatalf("ping: %d %v", w.Code, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	app.do(t, request{method: http.MethodGet, path: "/api/ping"})

	w, _ := app.do(t, request{method: http.MethodGet, path: "/metrics"})
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `gazette_http_request_duration_seconds_count{method="GET",route="/api/ping",status="200"}`) {
		t.Fatalf("ping request not recorded:\n%s", w.Body.String())
	}
}

func TestShowCountsViewOncePerClientIP(t *testing.T) {
	app := newTestApp(t, nil)
	author := testutil.CreateUser(t, app.db, "author", "admin")
	post := testutil.CreatePost(t, app.db, testutil.PostSeed{UserID: author.ID, Title: "hello"})
	path := "/api/posts/" + itoa(post.ID)

	for i := 0; i < 3; i++ {
		w, body := app.do(t, request{method: http.MethodGet, path: path, remoteAddr: "192.0.2.10:4000"})
		if w.Code != http.StatusOK || body["success"] != true {
			t.Fatalf("show: %d %v", w.Code, body)
		}
		data := body["data"].(map[string]any)
		if data["views"].(float64) != 1 {
			t.Fatalf("read %d: views = %v, want 1", i, data["views"])
		}
		if data["title"] != "hello" {
			t.Fatalf("unexpected title %v", data["title"])
		}
	}

	_, body := app.do(t, request{method: http.MethodGet, path: path, remoteAddr: "192.0.2.11:4000"})
	if views := body["data"].(map[string]any)["views"].(float64); views != 2 {
		t.Fatalf("second client: views = %v, want 2", views)
	}
}

func TestShowMissingPost(t *testing.T) {
	app := newTestApp(t, nil)
	for _, path := range []string{"/api/posts/999", "/api/posts/not-a-number"} {
		w, body := app.do(t, request{method: http.MethodGet, path: path})
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: status %d", path, w.Code)
		}
		if body["success"] != false || body["error"] != "The requested post does not exist or has been removed." {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}
}

func TestListAndCategoriesShape(t *testing.T) {
	app := newTestApp(t, nil)
	author := testutil.CreateUser(t, app.db, "author", "admin")
	testutil.CreatePost(t, app.db, testutil.PostSeed{UserID: author.ID, Category: "review"})
	testutil.CreatePost(t, app.db, testutil.PostSeed{UserID: author.ID, Category: "news"})

	w, body := app.do(t, request{method: http.MethodGet, path: "/api/posts?sort=views&per_page=1"})
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	if body["total"].(float64) != 2 || body["last_page"].(float64) != 2 || body["current_page"].(float64) != 1 {
		t.Fatalf("unexpected page metadata: %v", body)
	}
	if data := body["data"].([]any); len(data) != 1 {
		t.Fatalf("expected 1 item, got %d", len(data))
	}

	w, body = app.do(t, request{method: http.MethodGet, path: "/api/posts/categories"})
	if w.Code != http.StatusOK {
		t.Fatalf("categories: %d", w.Code)
	}
	categories := body["categories"].([]any)
	if len(categories) != 2 || categories[0] != "news" || categories[1] != "review" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	// 没有精选、互动与图片时 featured 返回空数组
	for path, want := range map[string]int{"/api/posts/trending": 2, "/api/posts/featured": 0} {
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		var items []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil || items == nil {
			t.Fatalf("%s: expected a JSON array, got %q", path, w.Body.String())
		}
		if w.Code != http.StatusOK || len(items) != want {
			t.Fatalf("%s: status %d, %d items, want %d", path, w.Code, len(items), want)
		}
	}
}

func TestCreatePostAuthorization(t *testing.T) {
	app := newTestApp(t, nil)
	admin := testutil.CreateUser(t, app.db, "admin", "admin")
	reader := testutil.CreateUser(t, app.db, "reader", "user")
	fields := map[string]string{"title": "Hello", "content": "World", "category": "news", "is_featured": "true"}

	body, contentType := multipartBody(t, fields)
	w, res := app.do(t, request{method: http.MethodPost, path: "/api/posts", body: body, contentType: contentType})
	if w.Code != http.StatusUnauthorized || res["success"] != false {
		t.Fatalf("anonymous: %d %v", w.Code, res)
	}

	body, contentType = multipartBody(t, fields)
	w, res = app.do(t, request{method: http.MethodPost, path: "/api/posts", body: body, contentType: contentType, token: tokenFor(t, reader)})
	if w.Code != http.StatusForbidden {
		t.Fatalf("reader: %d %v", w.Code, res)
	}

	body, contentType = multipartBody(t, fields)
	w, res = app.do(t, request{method: http.MethodPost, path: "/api/posts", body: body, contentType: contentType, token: tokenFor(t, admin)})
	if w.Code != http.StatusCreated || res["success"] != true {
		t.Fatalf("admin: %d %v", w.Code, res)
	}
	post := res["post"].(map[string]any)
	if post["title"] != "Hello" || post["is_featured"] != true {
		t.Fatalf("unexpected post: %v", post)
	}
}

func TestCreatePostValidation(t *testing.T) {
	app := newTestApp(t, nil)
	admin := testutil.CreateUser(t, app.db, "admin", "admin")

	body, contentType := multipartBody(t, map[string]string{"content": "x", "category": "sports"})
	w, res := app.do(t, request{method: http.MethodPost, path: "/api/posts", body: body, contentType: contentType, token: tokenFor(t, admin)})
	if w.Code != http.StatusUnprocessableEntity || res["success"] != false {
		t.Fatalf("expected 422, got %d %v", w.Code, res)
	}
	errs := res["errors"].(map[string]any)
	if _, ok := errs["title"]; !ok {
		t.Fatalf("missing title error: %v", errs)
	}
	if _, ok := errs["category"]; !ok {
		t.Fatalf("missing category error: %v", errs)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t, nil)
	reader := testutil.CreateUser(t, app.db, "reader", "user")
	author := testutil.CreateUser(t, app.db, "author", "admin")
	post := testutil.CreatePost(t, app.db, testutil.PostSeed{UserID: author.ID})
	token := tokenFor(t, reader)
	likePath := "/api/posts/" + itoa(post.ID) + "/like"

	w, res := app.do(t, request{method: http.MethodPost, path: likePath, token: token})
	if w.Code != http.StatusOK || res["data"].(map[string]any)["liked"] != true {
		t.Fatalf("like: %d %v", w.Code, res)
	}

	w, _ = app.do(t, request{method: http.MethodPost, path: "/api/auth/logout", token: token})
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}

	w, _ = app.do(t, request{method: http.MethodPost, path: likePath, token: token})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token should be rejected, got %d", w.Code)
	}
}

func TestAdminCommentListRequiresAdmin(t *testing.T) {
	app := newTestApp(t, nil)
	reader := testutil.CreateUser(t, app.db, "reader", "user")
	admin := testutil.CreateUser(t, app.db, "admin", "admin")

	w, _ := app.do(t, request{method: http.MethodGet, path: "/api/comments", token: tokenFor(t, reader)})
	if w.Code != http.StatusForbidden {
		t.Fatalf("reader: %d", w.Code)
	}
	w, res := app.do(t, request{method: http.MethodGet, path: "/api/comments?per_page=30", token: tokenFor(t, admin)})
	if w.Code != http.StatusOK || res["total"].(float64) != 0 {
		t.Fatalf("admin: %d %v", w.Code, res)
	}
}

func TestCommentRateLimit(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) {
		cfg.RateLimit.CommentRPS = 0.001
		cfg.RateLimit.CommentBurst = 1
	})
	reader := testutil.CreateUser(t, app.db, "reader", "user")
	author := testutil.CreateUser(t, app.db, "author", "admin")
	post := testutil.CreatePost(t, app.db, testutil.PostSeed{UserID: author.ID})
	path := "/api/posts/" + itoa(post.ID) + "/comments"
	token := tokenFor(t, reader)

	send := func() int {
		w, _ := app.do(t, request{
			method:      http.MethodPost,
			path:        path,
			token:       token,
			remoteAddr:  "198.51.100.20:5000",
			body:        strings.NewReader(`{"content":"nice post"}`),
			contentType: "application/json",
		})
		return w.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first comment: %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second comment should be limited, got %d", code)
	}

	w, res := app.do(t, request{method: http.MethodGet, path: path})
	if w.Code != http.StatusOK || len(res["data"].([]any)) != 1 {
		t.Fatalf("list comments: %d %v", w.Code, res)
	}
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
