package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

type orgProfileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	ListPendingOrganizations(ctx context.Context) ([]models.Profile, error)
	SetOrgApproval(ctx context.Context, id string, approved bool) error
}

type orgDecisionNotifier interface {
	QueueOrganizationDecision(profile models.Profile, approved bool)
}

// AdminService covers super-admin moderation of organization accounts.
type AdminService struct {
	profiles orgProfileRepository
	notifier orgDecisionNotifier
	logger   *zap.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(profiles orgProfileRepository, notifier orgDecisionNotifier, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{profiles: profiles, notifier: notifier, logger: logger}
}

// ListPendingOrganizations returns organization accounts awaiting review.
func (s *AdminService) ListPendingOrganizations(ctx context.Context) ([]models.Profile, error) {
	pending, err := s.profiles.ListPendingOrganizations(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list pending organizations")
	}
	return pending, nil
}

// Decide approves or rejects an organization account and emails the
// outcome to the organization.
func (s *AdminService) Decide(ctx context.Context, orgID string, approved bool) (*models.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "organization not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load organization")
	}
	if !profile.IsOrg {
		return nil, appErrors.Clone(appErrors.ErrValidation, "account is not an organization")
	}

	if err := s.profiles.SetOrgApproval(ctx, orgID, approved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "organization not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to record decision")
	}
	profile.IsOrgApproved = approved

	if s.notifier != nil {
		s.notifier.QueueOrganizationDecision(*profile, approved)
	}
	s.logger.Info("organization decision recorded",
		zap.String("org_id", orgID), zap.Bool("approved", approved))
	return profile, nil
}
