// Package storage defines persistence contracts for site content.
package storage

import (
	"context"
	"time"

	siteerrors "github.com/louisbranch/louisbranch.dev/internal/site/errors"
)

var (
	// ErrNotFound indicates a requested post is missing.
	ErrNotFound = siteerrors.E(siteerrors.KindNotFound, "record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained post already exists.
	ErrAlreadyExists = siteerrors.E(siteerrors.KindConflict, "record already exists")
)

// Post stores one blog article.
type Post struct {
	ID        int64
	Title     string
	Slug      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostStore persists blog posts.
//
// Listing order is newest first: created_at descending with id descending as
// the tiebreak, so insertion order wins when rows share a timestamp.
type PostStore interface {
	CreatePost(ctx context.Context, post Post) (Post, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	GetPostBySlug(ctx context.Context, slug string) (Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	RecentPosts(ctx context.Context, limit int) ([]Post, error)
	UpdatePost(ctx context.Context, post Post) (Post, error)
	DeletePost(ctx context.Context, id int64) error
	CountPosts(ctx context.Context) (int64, error)
	Close() error
}
