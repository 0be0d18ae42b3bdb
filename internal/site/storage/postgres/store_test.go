package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// Round-trip tests need a live database and are gated behind an env DSN.
func openLiveStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("LOUISBRANCH_DEV_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LOUISBRANCH_DEV_TEST_DATABASE_URL not set")
	}
	store, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_, _ = store.pool.Exec(context.Background(), "TRUNCATE posts RESTART IDENTITY")
		_ = store.Close()
	})
	return store
}

func TestOpenRequiresDatabaseURL(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected empty url error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("expected unique violation for code 23505")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation should not map to unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("plain error should not map to unique violation")
	}
}

func TestCreateListPostsLive(t *testing.T) {
	store := openLiveStore(t)

	for _, title := range []string{"one", "two", "three"} {
		if _, err := store.CreatePost(context.Background(), storage.Post{Title: title, Content: "body"}); err != nil {
			t.Fatalf("create post %s: %v", title, err)
		}
	}

	posts, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len = %d, want 3", len(posts))
	}
	if posts[0].Title != "three" {
		t.Fatalf("posts[0].Title = %q, want %q", posts[0].Title, "three")
	}

	_, err = store.CreatePost(context.Background(), storage.Post{Title: "dup", Slug: posts[0].Slug, Content: "x"})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate slug error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetPostMissingLive(t *testing.T) {
	store := openLiveStore(t)

	if _, err := store.GetPost(context.Background(), 9999); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing post error = %v, want %v", err, storage.ErrNotFound)
	}
}
