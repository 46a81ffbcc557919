package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

type applicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id string) (*models.Application, error)
	ListByUser(ctx context.Context, userID string) ([]models.ApplicationDetail, error)
	ListByScholarship(ctx context.Context, scholarshipID string, status models.ApplicationStatus) ([]models.ApplicationDetail, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type scholarshipFinder interface {
	FindByID(ctx context.Context, id string) (*models.Scholarship, error)
}

type statusNotifier interface {
	QueueApplicationDecision(detail models.ApplicationDetail, status models.ApplicationStatus)
}

// ApplicationService handles the student application lifecycle.
type ApplicationService struct {
	repo         applicationRepository
	scholarships scholarshipFinder
	notifier     statusNotifier
	logger       *zap.Logger
	metrics      *MetricsService
	now          func() time.Time
}

// NewApplicationService constructs the application service.
func NewApplicationService(repo applicationRepository, scholarships scholarshipFinder, notifier statusNotifier, logger *zap.Logger, metrics *MetricsService, now func() time.Time) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ApplicationService{
		repo:         repo,
		scholarships: scholarships,
		notifier:     notifier,
		logger:       logger,
		metrics:      metrics,
		now:          now,
	}
}

// Apply submits a new application with the initial Applied status. A
// second submission for the same scholarship fails on the store's
// uniqueness constraint; there is no read-before-write check, so
// concurrent duplicates cannot slip through.
func (s *ApplicationService) Apply(ctx context.Context, userID, scholarshipID string) (*models.Application, error) {
	if _, err := s.scholarships.FindByID(ctx, scholarshipID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load scholarship")
	}

	now := s.now()
	app := &models.Application{
		UserID:        userID,
		ScholarshipID: scholarshipID,
		Status:        models.StatusApplied,
		AppliedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		var domainErr *appErrors.Error
		if errors.As(err, &domainErr) && domainErr.Code == appErrors.ErrDuplicateApplication.Code {
			s.metrics.RecordApplication("duplicate")
			return nil, err
		}
		s.metrics.RecordApplication("error")
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to submit application")
	}
	s.metrics.RecordApplication("submitted")
	s.logger.Info("application submitted",
		zap.String("user_id", userID),
		zap.String("scholarship_id", scholarshipID))
	return app, nil
}

// ListMine returns the caller's applications, most recent first.
func (s *ApplicationService) ListMine(ctx context.Context, userID string) ([]models.ApplicationDetail, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list applications")
	}
	return apps, nil
}

// ListForScholarship returns every application on a listing the caller
// owns, optionally narrowed by status.
func (s *ApplicationService) ListForScholarship(ctx context.Context, claims *models.JWTClaims, scholarshipID string, status models.ApplicationStatus) ([]models.ApplicationDetail, error) {
	if err := s.authorizeReviewer(ctx, claims, scholarshipID); err != nil {
		return nil, err
	}
	if status != "" && status != models.StatusApplied && !models.ValidReviewStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown application status")
	}
	apps, err := s.repo.ListByScholarship(ctx, scholarshipID, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list applications")
	}
	return apps, nil
}

// UpdateStatus moves an application to any review status. Transitions are
// not order-constrained: a reviewer may go straight from Applied to
// Accepted, or reverse an earlier decision.
func (s *ApplicationService) UpdateStatus(ctx context.Context, claims *models.JWTClaims, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	if !models.ValidReviewStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of Under Review, Accepted, Rejected")
	}

	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReviewer(ctx, claims, app.ScholarshipID); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, applicationID, status, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update application status")
	}
	app.Status = status
	app.UpdatedAt = now

	if s.notifier != nil && (status == models.StatusAccepted || status == models.StatusRejected) {
		s.notifyDecision(ctx, app, status)
	}
	return app, nil
}

// Withdraw deletes the caller's application regardless of its current
// status.
func (s *ApplicationService) Withdraw(ctx context.Context, userID, applicationID string) error {
	app, err := s.findApplication(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.UserID != userID {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "application belongs to another student")
	}
	if err := s.repo.Delete(ctx, applicationID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to withdraw application")
	}
	s.logger.Info("application withdrawn", zap.String("application_id", applicationID))
	return nil
}

func (s *ApplicationService) findApplication(ctx context.Context, id string) (*models.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load application")
	}
	return app, nil
}

// authorizeReviewer allows the super admin or the organization that owns
// the listing.
func (s *ApplicationService) authorizeReviewer(ctx context.Context, claims *models.JWTClaims, scholarshipID string) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role == models.RoleSuperAdmin {
		return nil
	}
	if claims.Role != models.RoleOrganization {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "only organizations review applications")
	}
	scholarship, err := s.scholarships.FindByID(ctx, scholarshipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load scholarship")
	}
	if scholarship.CreatedBy == nil || *scholarship.CreatedBy != claims.UserID {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "scholarship belongs to another organization")
	}
	return nil
}

// notifyDecision fetches the joined detail row so the email can name the
// scholarship and address the applicant.
func (s *ApplicationService) notifyDecision(ctx context.Context, app *models.Application, status models.ApplicationStatus) {
	details, err := s.repo.ListByUser(ctx, app.UserID)
	if err != nil {
		s.logger.Warn("failed to load application detail for notification",
			zap.String("application_id", app.ID), zap.Error(err))
		return
	}
	for _, detail := range details {
		if detail.ID == app.ID {
			s.notifier.QueueApplicationDecision(detail, status)
			return
		}
	}
}
