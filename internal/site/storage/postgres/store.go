// Package postgres provides a Postgres-backed post storage implementation.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	siteerrors "github.com/louisbranch/louisbranch.dev/internal/site/errors"
	"github.com/louisbranch/louisbranch.dev/internal/site/slug"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
)

// uniqueViolationCode is the Postgres error code for unique constraint failures.
const uniqueViolationCode = "23505"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS posts (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at DESC, id DESC);
`

// Store persists posts in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres and ensures the posts schema exists.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure posts schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// CreatePost inserts one post and returns it with its assigned id.
func (s *Store) CreatePost(ctx context.Context, post storage.Post) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.pool == nil {
		return storage.Post{}, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	post.Title = strings.TrimSpace(post.Title)
	post.Content = strings.TrimSpace(post.Content)
	post.Slug = strings.TrimSpace(post.Slug)
	if post.Title == "" {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "title is required")
	}
	if post.Content == "" {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "content is required")
	}
	if post.Slug == "" {
		post.Slug = slug.FromTitle(post.Title)
	}
	if !slug.Valid(post.Slug) {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, fmt.Sprintf("slug %q is not url-safe", post.Slug))
	}

	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	if post.UpdatedAt.IsZero() {
		post.UpdatedAt = post.CreatedAt
	}
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()

	row := s.pool.QueryRow(
		ctx,
		`INSERT INTO posts (title, slug, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		post.Title,
		post.Slug,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err := row.Scan(&post.ID); err != nil {
		if isUniqueViolation(err) {
			return storage.Post{}, storage.ErrAlreadyExists
		}
		return storage.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost returns one post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.pool == nil {
		return storage.Post{}, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	row := s.pool.QueryRow(
		ctx,
		`SELECT id, title, slug, content, created_at, updated_at
		   FROM posts
		  WHERE id = $1`,
		id,
	)
	return scanPost(row, "get post")
}

// GetPostBySlug returns one post by slug.
func (s *Store) GetPostBySlug(ctx context.Context, postSlug string) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.pool == nil {
		return storage.Post{}, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "slug is required")
	}
	row := s.pool.QueryRow(
		ctx,
		`SELECT id, title, slug, content, created_at, updated_at
		   FROM posts
		  WHERE slug = $1`,
		postSlug,
	)
	return scanPost(row, "get post by slug")
}

// ListPosts returns every post, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]storage.Post, error) {
	return s.listPosts(ctx, 0)
}

// RecentPosts returns at most limit posts, newest first.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]storage.Post, error) {
	if limit <= 0 {
		return nil, siteerrors.E(siteerrors.KindInvalidInput, "limit must be greater than zero")
	}
	return s.listPosts(ctx, limit)
}

func (s *Store) listPosts(ctx context.Context, limit int) ([]storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.pool == nil {
		return nil, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}

	query := `SELECT id, title, slug, content, created_at, updated_at
	            FROM posts
	           ORDER BY created_at DESC, id DESC`
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.pool.Query(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]storage.Post, 0)
	for rows.Next() {
		var post storage.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		post.CreatedAt = post.CreatedAt.UTC()
		post.UpdatedAt = post.UpdatedAt.UTC()
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost rewrites the mutable fields of an existing post.
func (s *Store) UpdatePost(ctx context.Context, post storage.Post) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.pool == nil {
		return storage.Post{}, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	if post.ID <= 0 {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "post id is required")
	}
	post.Title = strings.TrimSpace(post.Title)
	post.Content = strings.TrimSpace(post.Content)
	post.Slug = strings.TrimSpace(post.Slug)
	if post.Title == "" {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "title is required")
	}
	if post.Content == "" {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "content is required")
	}
	if !slug.Valid(post.Slug) {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, fmt.Sprintf("slug %q is not url-safe", post.Slug))
	}
	post.UpdatedAt = time.Now().UTC()

	tag, err := s.pool.Exec(
		ctx,
		`UPDATE posts
		    SET title = $1, slug = $2, content = $3, updated_at = $4
		  WHERE id = $5`,
		post.Title,
		post.Slug,
		post.Content,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.Post{}, storage.ErrAlreadyExists
		}
		return storage.Post{}, fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.Post{}, storage.ErrNotFound
	}
	return s.GetPost(ctx, post.ID)
}

// DeletePost removes one post by id.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.pool == nil {
		return siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountPosts returns the total number of posts.
func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.pool == nil {
		return 0, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func scanPost(row pgx.Row, op string) (storage.Post, error) {
	var post storage.Post
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Post{}, storage.ErrNotFound
		}
		return storage.Post{}, fmt.Errorf("%s: %w", op, err)
	}
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return post, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

var _ storage.PostStore = (*Store)(nil)
