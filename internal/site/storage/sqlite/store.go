// Package sqlite provides a SQLite-backed post storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/louisbranch.dev/internal/platform/storage/sqlitemigrate"
	siteerrors "github.com/louisbranch/louisbranch.dev/internal/site/errors"
	"github.com/louisbranch/louisbranch.dev/internal/site/slug"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage"
	"github.com/louisbranch/louisbranch.dev/internal/site/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists posts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite post store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreatePost inserts one post and returns it with its assigned id.
func (s *Store) CreatePost(ctx context.Context, post storage.Post) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.sqlDB == nil {
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

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO posts (title, slug, content, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		post.Title,
		post.Slug,
		post.Content,
		toMillis(post.CreatedAt),
		toMillis(post.UpdatedAt),
	)
	if err != nil {
		if isSlugUniqueViolation(err) {
			return storage.Post{}, storage.ErrAlreadyExists
		}
		return storage.Post{}, fmt.Errorf("create post: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Post{}, fmt.Errorf("create post id: %w", err)
	}
	post.ID = id
	return post, nil
}

// GetPost returns one post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Post{}, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, slug, content, created_at, updated_at
		   FROM posts
		  WHERE id = ?`,
		id,
	)
	return scanPost(row, "get post")
}

// GetPostBySlug returns one post by slug.
func (s *Store) GetPostBySlug(ctx context.Context, postSlug string) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Post{}, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	postSlug = strings.TrimSpace(postSlug)
	if postSlug == "" {
		return storage.Post{}, siteerrors.E(siteerrors.KindInvalidInput, "slug is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, slug, content, created_at, updated_at
		   FROM posts
		  WHERE slug = ?`,
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
	if s == nil || s.sqlDB == nil {
		return nil, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}

	query := `SELECT id, title, slug, content, created_at, updated_at
	            FROM posts
	           ORDER BY created_at DESC, id DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.sqlDB.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.sqlDB.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]storage.Post, 0)
	for rows.Next() {
		var post storage.Post
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		post.CreatedAt = fromMillis(createdAt)
		post.UpdatedAt = fromMillis(updatedAt)
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
	if s == nil || s.sqlDB == nil {
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

	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE posts
		    SET title = ?, slug = ?, content = ?, updated_at = ?
		  WHERE id = ?`,
		post.Title,
		post.Slug,
		post.Content,
		toMillis(post.UpdatedAt),
		post.ID,
	)
	if err != nil {
		if isSlugUniqueViolation(err) {
			return storage.Post{}, storage.ErrAlreadyExists
		}
		return storage.Post{}, fmt.Errorf("update post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.Post{}, fmt.Errorf("update post: %w", err)
	}
	if affected == 0 {
		return storage.Post{}, storage.ErrNotFound
	}
	return s.GetPost(ctx, post.ID)
}

// DeletePost removes one post by id.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountPosts returns the total number of posts.
func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, siteerrors.E(siteerrors.KindUnavailable, "storage is not configured")
	}
	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func scanPost(row *sql.Row, op string) (storage.Post, error) {
	var post storage.Post
	var createdAt int64
	var updatedAt int64
	err := row.Scan(&post.ID, &post.Title, &post.Slug, &post.Content, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Post{}, storage.ErrNotFound
		}
		return storage.Post{}, fmt.Errorf("%s: %w", op, err)
	}
	post.CreatedAt = fromMillis(createdAt)
	post.UpdatedAt = fromMillis(updatedAt)
	return post, nil
}

func isSlugUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "posts.slug")
}

var _ storage.PostStore = (*Store)(nil)
