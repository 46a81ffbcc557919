package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

type bookmarkRepository interface {
	FindByPair(ctx context.Context, userID, scholarshipID string) (*models.Bookmark, error)
	Create(ctx context.Context, bookmark *models.Bookmark) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
}

// BookmarkService manages a student's saved scholarships.
type BookmarkService struct {
	repo         bookmarkRepository
	scholarships scholarshipFinder
	logger       *zap.Logger
}

// NewBookmarkService constructs the bookmark service.
func NewBookmarkService(repo bookmarkRepository, scholarships scholarshipFinder, logger *zap.Logger) *BookmarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookmarkService{repo: repo, scholarships: scholarships, logger: logger}
}

// Toggle adds the bookmark when absent and removes it when present.
// Applying it twice returns the pair to its starting state.
func (s *BookmarkService) Toggle(ctx context.Context, userID, scholarshipID string) (models.BookmarkToggleResult, error) {
	existing, err := s.repo.FindByPair(ctx, userID, scholarshipID)
	switch {
	case err == nil:
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to remove bookmark")
		}
		return models.BookmarkRemoved, nil
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.scholarships.FindByID(ctx, scholarshipID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
			}
			return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load scholarship")
		}
		bookmark := &models.Bookmark{UserID: userID, ScholarshipID: scholarshipID}
		if err := s.repo.Create(ctx, bookmark); err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to add bookmark")
		}
		return models.BookmarkAdded, nil
	default:
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to look up bookmark")
	}
}

// List returns the caller's bookmarks, newest first.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]models.Bookmark, error) {
	bookmarks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list bookmarks")
	}
	return bookmarks, nil
}
