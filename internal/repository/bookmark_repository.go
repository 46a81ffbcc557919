package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scholarseek/scholarseek-api/internal/models"
)

// BookmarkRepository manages the per-user bookmark set.
type BookmarkRepository struct {
	db *sqlx.DB
}

// NewBookmarkRepository constructs a BookmarkRepository.
func NewBookmarkRepository(db *sqlx.DB) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// FindByPair returns the bookmark for a (user, scholarship) pair if present.
func (r *BookmarkRepository) FindByPair(ctx context.Context, userID, scholarshipID string) (*models.Bookmark, error) {
	const query = `SELECT id, user_id, scholarship_id, created_at FROM bookmarks WHERE user_id = $1 AND scholarship_id = $2 LIMIT 1`
	var bookmark models.Bookmark
	if err := r.db.GetContext(ctx, &bookmark, query, userID, scholarshipID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return &bookmark, nil
}

// Create inserts a bookmark for the pair.
func (r *BookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO bookmarks (id, user_id, scholarship_id, created_at)
        VALUES (:id, :user_id, :scholarship_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, bookmark); err != nil {
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

// Delete removes a bookmark by id.
func (r *BookmarkRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM bookmarks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

// ListByUser returns a student's bookmarks, newest first.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	const query = `SELECT id, user_id, scholarship_id, created_at FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC`
	var bookmarks []models.Bookmark
	if err := r.db.SelectContext(ctx, &bookmarks, query, userID); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}
