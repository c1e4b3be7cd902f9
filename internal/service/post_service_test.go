package service

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/model"
	"Gazette/internal/pkg/consts"
	"Gazette/internal/testutil"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngUpload() *dto.ImageUpload {
	return &dto.ImageUpload{Filename: "cover.png", Size: int64(len(pngHeader)), Reader: bytes.NewReader(pngHeader)}
}

func boolPtr(v bool) *bool { return &v }

func TestGetPostRecordsViewOncePerViewer(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	post := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 3})
	testutil.AddLikes(t, f.db, post.ID, 100, 2)
	ctx := context.Background()

	first, err := f.posts.GetPost(ctx, post.ID, "203.0.113.5")
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if first.Views != 4 {
		t.Fatalf("views after first read = %d, want 4", first.Views)
	}
	if first.LikeCount == nil || *first.LikeCount != 2 {
		t.Fatalf("like count not attached: %v", first.LikeCount)
	}
	if first.Author.Name != "author" {
		t.Fatalf("author = %+v", first.Author)
	}

	again, err := f.posts.GetPost(ctx, post.ID, "203.0.113.5")
	if err != nil {
		t.Fatalf("get post again: %v", err)
	}
	if again.Views != 4 {
		t.Fatalf("views after repeat read = %d, want 4", again.Views)
	}

	anonymous, err := f.posts.GetPost(ctx, post.ID, "")
	if err != nil {
		t.Fatalf("get post without viewer: %v", err)
	}
	if anonymous.Views != 4 {
		t.Fatalf("read without viewer should not count, views = %d", anonymous.Views)
	}
}

func TestGetPostNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.posts.GetPost(context.Background(), 404, "203.0.113.5"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}

	var events int64
	f.db.Model(&model.PostView{}).Count(&events)
	if events != 0 {
		t.Fatalf("missing post should not record a view, got %d events", events)
	}
}

func TestCreatePostPermissions(t *testing.T) {
	f := newFixture(t)
	reader := testutil.CreateUser(t, f.db, "reader", "user")
	req := &dto.PostCreateDTO{Title: "t", Content: "c", Category: consts.CategoryNews}
	ctx := context.Background()

	if _, err := f.posts.CreatePost(ctx, Actor{}, req, nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("anonymous: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := f.posts.CreatePost(ctx, Actor{UserID: reader.ID, Role: consts.RoleUser}, req, nil); !errors.Is(err, ErrAdminOnly) {
		t.Fatalf("reader: expected ErrAdminOnly, got %v", err)
	}
}

func TestCreatePostWithImage(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateUser(t, f.db, "admin", "admin")
	req := &dto.PostCreateDTO{Title: "Launch", Content: "body", Category: consts.CategoryPodcast, IsFeatured: boolPtr(true)}

	post, err := f.posts.CreatePost(context.Background(), Actor{UserID: admin.ID, Role: consts.RoleAdmin}, req, pngUpload())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if !post.IsFeatured || post.Category != consts.CategoryPodcast || post.UserID != admin.ID {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Image == nil || !strings.HasPrefix(*post.Image, consts.ImageObjectPrefix) || !strings.HasSuffix(*post.Image, ".png") {
		t.Fatalf("unexpected image key: %v", post.Image)
	}
	if !f.images.has(*post.Image) {
		t.Fatalf("image %s was not uploaded", *post.Image)
	}
	if post.ImageURL == nil || *post.ImageURL != f.images.PublicURL(*post.Image) {
		t.Fatalf("unexpected image url: %v", post.ImageURL)
	}
}

func TestCreatePostRejectsBadImages(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateUser(t, f.db, "admin", "admin")
	actor := Actor{UserID: admin.ID, Role: consts.RoleAdmin}
	req := &dto.PostCreateDTO{Title: "t", Content: "c", Category: consts.CategoryNews}
	ctx := context.Background()

	text := []byte("definitely not an image")
	_, err := f.posts.CreatePost(ctx, actor, req, &dto.ImageUpload{Filename: "x.png", Size: int64(len(text)), Reader: bytes.NewReader(text)})
	if !errors.Is(err, ErrImageInvalid) {
		t.Fatalf("expected ErrImageInvalid, got %v", err)
	}

	huge := pngUpload()
	huge.Size = consts.MaxImageSize + 1
	if _, err := f.posts.CreatePost(ctx, actor, req, huge); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}

	var n int64
	f.db.Model(&model.Post{}).Count(&n)
	if n != 0 {
		t.Fatalf("rejected uploads should not create posts, got %d", n)
	}
}

func TestUpdatePostReplacesImage(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateUser(t, f.db, "admin", "admin")
	actor := Actor{UserID: admin.ID, Role: consts.RoleAdmin}
	ctx := context.Background()

	created, err := f.posts.CreatePost(ctx, actor, &dto.PostCreateDTO{Title: "t", Content: "c", Category: consts.CategoryNews}, pngUpload())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	oldKey := *created.Image

	updated, err := f.posts.UpdatePost(ctx, actor, created.ID, &dto.PostUpdateDTO{Title: "t2", Content: "c2"}, pngUpload())
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Title != "t2" || updated.Category != consts.CategoryNews {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if *updated.Image == oldKey || !f.images.has(*updated.Image) {
		t.Fatalf("new image not stored: %v", *updated.Image)
	}
	if f.images.has(oldKey) {
		t.Fatalf("old image %s should be deleted", oldKey)
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	f := newFixture(t)
	owner := testutil.CreateUser(t, f.db, "owner", "user")
	other := testutil.CreateUser(t, f.db, "other", "user")
	admin := testutil.CreateUser(t, f.db, "admin", "admin")
	post := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: owner.ID, Category: consts.CategoryReview})
	ctx := context.Background()

	req := &dto.PostUpdateDTO{Title: "x", Content: "y", IsFeatured: boolPtr(true)}
	if _, err := f.posts.UpdatePost(ctx, Actor{UserID: other.ID, Role: consts.RoleUser}, post.ID, req, nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("other user: expected ErrNotOwner, got %v", err)
	}

	updated, err := f.posts.UpdatePost(ctx, Actor{UserID: owner.ID, Role: consts.RoleUser}, post.ID, req, nil)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.IsFeatured {
		t.Fatal("non-admin owner must not be able to feature a post")
	}

	updated, err = f.posts.UpdatePost(ctx, Actor{UserID: admin.ID, Role: consts.RoleAdmin}, post.ID, req, nil)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if !updated.IsFeatured {
		t.Fatal("admin should be able to feature a post")
	}

	if _, err := f.posts.UpdatePost(ctx, Actor{UserID: admin.ID, Role: consts.RoleAdmin}, 9999, req, nil); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("missing post: expected ErrPostNotFound, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	admin := testutil.CreateUser(t, f.db, "admin", "admin")
	other := testutil.CreateUser(t, f.db, "other", "user")
	actor := Actor{UserID: admin.ID, Role: consts.RoleAdmin}
	ctx := context.Background()

	created, err := f.posts.CreatePost(ctx, actor, &dto.PostCreateDTO{Title: "t", Content: "c", Category: consts.CategoryNews}, pngUpload())
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := f.posts.DeletePost(ctx, Actor{UserID: other.ID, Role: consts.RoleUser}, created.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("other user: expected ErrNotOwner, got %v", err)
	}
	if err := f.posts.DeletePost(ctx, actor, created.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if f.images.has(*created.Image) {
		t.Fatal("image should be removed with the post")
	}
	if err := f.posts.DeletePost(ctx, actor, created.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("second delete: expected ErrPostNotFound, got %v", err)
	}
}
