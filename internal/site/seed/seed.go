// Package seed provides demo blog content for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// Posts returns the demo fixture set, oldest first.
func Posts() []storage.Post {
	return []storage.Post{
		{
			Title: "Hello, world",
			Slug:  "hello-world",
			Content: "This site is a small Go service: a handful of HTML pages, " +
				"a JSON API, and a SQLite file.\n\nMore soon.",
		},
		{
			Title: "Choosing boring storage",
			Slug:  "choosing-boring-storage",
			Content: "SQLite in WAL mode covers a personal site for years before " +
				"anything else is worth the operational cost.\n\nWhen it is, the " +
				"storage interface swaps in Postgres without touching handlers.",
		},
		{
			Title: "Slugs are part of the contract",
			Slug:  "slugs-are-part-of-the-contract",
			Content: "Once a post URL is shared, the slug is frozen. Titles can " +
				"change; links should not.",
		},
	}
}

// Apply inserts the fixture posts, skipping any slug already present.
func Apply(ctx context.Context, store storage.PostStore) (int, error) {
	created := 0
	for _, post := range Posts() {
		if _, err := store.CreatePost(ctx, post); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				continue
			}
			return created, fmt.Errorf("seed post %q: %w", post.Slug, err)
		}
		created++
	}
	return created, nil
}
