package service

import (
	"Gazette/internal/api/dto"
	"Gazette/internal/testutil"
	"context"
	"fmt"
	"slices"
	"testing"
)

func postIDs(posts []*dto.PostDTO) []uint64 {
	ids := make([]uint64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestListPostsPaginationIsConsistent(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	for i := 0; i < 12; i++ {
		post := testutil.CreatePost(t, f.db, testutil.PostSeed{
			UserID:    author.ID,
			Title:     fmt.Sprintf("post-%d", i),
			CreatedAt: daysAgo(float64(i)),
		})
		testutil.AddLikes(t, f.db, post.ID, 100, i%4)
	}
	ctx := context.Background()

	full, err := f.feed.ListPosts(ctx, &dto.PostListQuery{Sort: "likes", PerPage: "100"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if full.Total != 12 || len(full.Data) != 12 || full.LastPage != 1 {
		t.Fatalf("unexpected full page: total=%d len=%d last=%d", full.Total, len(full.Data), full.LastPage)
	}

	var paged []uint64
	for page := 1; page <= 3; page++ {
		res, err := f.feed.ListPosts(ctx, &dto.PostListQuery{Sort: "likes", PerPage: "5", Page: fmt.Sprint(page)})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if res.LastPage != 3 || res.Total != 12 || res.CurrentPage != page {
			t.Fatalf("page %d metadata: %+v", page, res)
		}
		paged = append(paged, postIDs(res.Data)...)
	}
	if !slices.Equal(paged, postIDs(full.Data)) {
		t.Fatalf("pages %v do not match full ranking %v", paged, postIDs(full.Data))
	}

	for i := 1; i < len(full.Data); i++ {
		prev, cur := full.Data[i-1], full.Data[i]
		if *prev.LikeCount < *cur.LikeCount {
			t.Fatalf("likes not descending at %d: %d < %d", i, *prev.LikeCount, *cur.LikeCount)
		}
		if *prev.LikeCount == *cur.LikeCount && prev.ID > cur.ID {
			t.Fatalf("tie not broken by id at %d: %d > %d", i, prev.ID, cur.ID)
		}
	}

	past, err := f.feed.ListPosts(ctx, &dto.PostListQuery{Sort: "likes", PerPage: "5", Page: "4"})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(past.Data) != 0 || past.LastPage != 3 || past.Total != 12 || past.CurrentPage != 4 {
		t.Fatalf("unexpected page past end: %+v", past)
	}
}

func TestListPostsPageSizeDefaults(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	for i := 0; i < 15; i++ {
		testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, CreatedAt: daysAgo(float64(i))})
	}
	ctx := context.Background()

	for _, perPage := range []string{"", "abc", "0", "-3"} {
		res, err := f.feed.ListPosts(ctx, &dto.PostListQuery{PerPage: perPage})
		if err != nil {
			t.Fatalf("per_page %q: %v", perPage, err)
		}
		if len(res.Data) != 10 || res.LastPage != 2 {
			t.Fatalf("per_page %q: len=%d last=%d, want 10 and 2", perPage, len(res.Data), res.LastPage)
		}
	}

	res, err := f.feed.ListPosts(ctx, &dto.PostListQuery{PerPage: "1000"})
	if err != nil {
		t.Fatalf("per_page 1000: %v", err)
	}
	if len(res.Data) != 15 || res.LastPage != 1 {
		t.Fatalf("per_page 1000: len=%d last=%d", len(res.Data), res.LastPage)
	}
}

func TestListPostsEmpty(t *testing.T) {
	f := newFixture(t)
	res, err := f.feed.ListPosts(context.Background(), &dto.PostListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Total != 0 || res.LastPage != 1 || res.CurrentPage != 1 || res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("unexpected empty page: %+v", res)
	}
}

func TestListPostsCategoryAndUnknownSort(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	older := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Category: "review", CreatedAt: daysAgo(3)})
	newer := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Category: "review", CreatedAt: daysAgo(1)})
	testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Category: "news", CreatedAt: daysAgo(0)})
	ctx := context.Background()

	res, err := f.feed.ListPosts(ctx, &dto.PostListQuery{Category: "review", Sort: "bogus"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got, want := postIDs(res.Data), []uint64{newer.ID, older.ID}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if res.Total != 2 {
		t.Fatalf("total = %d, want 2", res.Total)
	}

	oldest, err := f.feed.ListPosts(ctx, &dto.PostListQuery{Category: "review", Sort: "oldest"})
	if err != nil {
		t.Fatalf("list oldest: %v", err)
	}
	if got, want := postIDs(oldest.Data), []uint64{older.ID, newer.ID}; !slices.Equal(got, want) {
		t.Fatalf("oldest: got %v, want %v", got, want)
	}

	all, err := f.feed.ListPosts(ctx, &dto.PostListQuery{Category: "all"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if all.Total != 3 {
		t.Fatalf("category all should not filter, total=%d", all.Total)
	}
}

func TestListPostsTrendingSort(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	reader := testutil.CreateUser(t, f.db, "reader", "user")

	// 4*2 + 3 + 57/10 + 10 = 26
	recent := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 57, CreatedAt: daysAgo(2)})
	testutil.AddLikes(t, f.db, recent.ID, 100, 4)
	testutil.AddComments(t, f.db, recent.ID, reader.ID, 3)

	// 10*2 + 0 + 50/10 = 25，超过 7 天没有加成
	old := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 50, CreatedAt: daysAgo(8)})
	testutil.AddLikes(t, f.db, old.ID, 100, 10)

	res, err := f.feed.ListPosts(context.Background(), &dto.PostListQuery{Sort: "trending"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got, want := postIDs(res.Data), []uint64{recent.ID, old.ID}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if *res.Data[0].LikeCount != 4 || *res.Data[0].CommentCount != 3 {
		t.Fatalf("engagement not attached: %+v", res.Data[0])
	}
}

func TestTrendingLimitAndTieBreak(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	var newest uint64
	for i := 0; i < 12; i++ {
		post := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, CreatedAt: daysAgo(0.5 - float64(i)*0.01)})
		newest = post.ID
	}

	posts, err := f.feed.Trending(context.Background())
	if err != nil {
		t.Fatalf("trending: %v", err)
	}
	if len(posts) != 10 {
		t.Fatalf("expected 10 trending posts, got %d", len(posts))
	}
	if posts[0].ID != newest {
		t.Fatalf("equal scores should prefer the newest post, got %d want %d", posts[0].ID, newest)
	}
}

func TestFeaturedPrefersFlaggedPosts(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	a := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Title: "A", IsFeatured: true, CreatedAt: daysAgo(9)})
	b := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Title: "B", IsFeatured: true, CreatedAt: daysAgo(8)})
	c := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Title: "C", CreatedAt: daysAgo(1)})
	testutil.AddLikes(t, f.db, c.ID, 1000, 100)

	posts, err := f.feed.Featured(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if got, want := postIDs(posts), []uint64{b.ID, a.ID}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFeaturedFallsBackToEngagement(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	reader := testutil.CreateUser(t, f.db, "reader", "user")

	// 互动分依次为 4、1、0、3，得分为 0 的帖子不入选
	liked := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID})
	testutil.AddLikes(t, f.db, liked.ID, 100, 2)
	commented := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID})
	testutil.AddComments(t, f.db, commented.ID, reader.ID, 1)
	testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 5})
	viewed := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 30})

	posts, err := f.feed.Featured(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if got, want := postIDs(posts), []uint64{liked.ID, viewed.ID, commented.ID}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFeaturedFallsBackToImages(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	few := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 5, Image: "posts/a.png"})
	first := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 9, Image: "posts/b.png"})
	testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 8})
	second := testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Views: 9, Image: "posts/c.png"})

	posts, err := f.feed.Featured(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if got, want := postIDs(posts), []uint64{first.ID, second.ID, few.ID}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if posts[0].ImageURL == nil || *posts[0].ImageURL != "http://images.test/gazette/posts/b.png" {
		t.Fatalf("image url not resolved: %v", posts[0].ImageURL)
	}
}

func TestFeaturedEmpty(t *testing.T) {
	f := newFixture(t)
	posts, err := f.feed.Featured(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no featured posts, got %d", len(posts))
	}
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "author", "admin")
	for _, category := range []string{"podcast", "lifestyle", "podcast"} {
		testutil.CreatePost(t, f.db, testutil.PostSeed{UserID: author.ID, Category: category})
	}

	res, err := f.feed.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if want := []string{"lifestyle", "podcast"}; !slices.Equal(res.Categories, want) {
		t.Fatalf("got %v, want %v", res.Categories, want)
	}
}
