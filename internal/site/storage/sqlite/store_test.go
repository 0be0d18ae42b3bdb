package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetPostRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.August, 20, 10, 30, 0, 0, time.UTC)
	input := storage.Post{
		Title:     "First Post",
		Content:   "Hello from the blog.",
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := store.CreatePost(context.Background(), input)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("id = %d, want > 0", created.ID)
	}
	if created.Slug != "first-post" {
		t.Fatalf("slug = %q, want %q", created.Slug, "first-post")
	}

	got, err := store.GetPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != input.Title {
		t.Fatalf("title = %q, want %q", got.Title, input.Title)
	}
	if got.Content != input.Content {
		t.Fatalf("content = %q, want %q", got.Content, input.Content)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestCreatePostRejectsEmptyFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.CreatePost(context.Background(), storage.Post{Content: "body"}); err == nil {
		t.Fatal("expected missing title error")
	}
	if _, err := store.CreatePost(context.Background(), storage.Post{Title: "title"}); err == nil {
		t.Fatal("expected missing content error")
	}
}

func TestCreatePostReturnsAlreadyExistsOnDuplicateSlug(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	post := storage.Post{Title: "Same Slug", Content: "one"}
	if _, err := store.CreatePost(context.Background(), post); err != nil {
		t.Fatalf("create initial post: %v", err)
	}
	_, err := store.CreatePost(context.Background(), storage.Post{Title: "other", Slug: "same-slug", Content: "two"})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetPostMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetPost(context.Background(), 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing post error = %v, want %v", err, storage.ErrNotFound)
	}
	if _, err := store.GetPostBySlug(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing slug error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListPostsOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	titles := []string{"one", "two", "three", "four", "five"}
	for i, title := range titles {
		_, err := store.CreatePost(context.Background(), storage.Post{
			Title:     title,
			Content:   "body " + title,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("create post %s: %v", title, err)
		}
	}

	posts, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 5 {
		t.Fatalf("len = %d, want 5", len(posts))
	}
	for i, wantID := range []int64{5, 4, 3, 2, 1} {
		if posts[i].ID != wantID {
			t.Fatalf("posts[%d].ID = %d, want %d", i, posts[i].ID, wantID)
		}
	}
}

func TestListPostsBreaksTimestampTiesByID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for _, title := range []string{"a", "b", "c"} {
		_, err := store.CreatePost(context.Background(), storage.Post{Title: title, Content: "x", CreatedAt: now})
		if err != nil {
			t.Fatalf("create post %s: %v", title, err)
		}
	}

	posts, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	for i, wantID := range []int64{3, 2, 1} {
		if posts[i].ID != wantID {
			t.Fatalf("posts[%d].ID = %d, want %d", i, posts[i].ID, wantID)
		}
	}
}

func TestRecentPostsLimits(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.CreatePost(context.Background(), storage.Post{
			Title:     "post " + string(rune('a'+i)),
			Content:   "body",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	posts, err := store.RecentPosts(context.Background(), 3)
	if err != nil {
		t.Fatalf("recent posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len = %d, want 3", len(posts))
	}
	for i, wantID := range []int64{5, 4, 3} {
		if posts[i].ID != wantID {
			t.Fatalf("posts[%d].ID = %d, want %d", i, posts[i].ID, wantID)
		}
	}

	if _, err := store.RecentPosts(context.Background(), 0); err == nil {
		t.Fatal("expected limit validation error")
	}
}

func TestUpdatePost(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	created, err := store.CreatePost(context.Background(), storage.Post{Title: "Before", Content: "old"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	created.Title = "After"
	created.Content = "new"
	updated, err := store.UpdatePost(context.Background(), created)
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Title != "After" {
		t.Fatalf("title = %q, want %q", updated.Title, "After")
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updated_at %v before created_at %v", updated.UpdatedAt, updated.CreatedAt)
	}

	missing := updated
	missing.ID = 404
	if _, err := store.UpdatePost(context.Background(), missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing post error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDeletePost(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	created, err := store.CreatePost(context.Background(), storage.Post{Title: "Gone", Content: "soon"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := store.DeletePost(context.Background(), created.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if err := store.DeletePost(context.Background(), created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("delete missing post error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCountPosts(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, title := range []string{"x", "y"} {
		if _, err := store.CreatePost(context.Background(), storage.Post{Title: title, Content: "z"}); err != nil {
			t.Fatalf("create post %s: %v", title, err)
		}
	}
	count, err := store.CountPosts(context.Background())
	if err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
