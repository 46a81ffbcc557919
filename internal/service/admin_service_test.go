package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

type mockOrgProfileRepo struct {
	mockProfileFinder
}

func (m *mockOrgProfileRepo) ListPendingOrganizations(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range m.profiles {
		if p.IsOrg && !p.IsOrgApproved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockOrgProfileRepo) SetOrgApproval(ctx context.Context, id string, approved bool) error {
	p, ok := m.profiles[id]
	if !ok || !p.IsOrg {
		return sql.ErrNoRows
	}
	p.IsOrgApproved = approved
	return nil
}

type recordedDecision struct {
	profile  models.Profile
	approved bool
}

type mockOrgNotifier struct {
	decisions []recordedDecision
}

func (m *mockOrgNotifier) QueueOrganizationDecision(profile models.Profile, approved bool) {
	m.decisions = append(m.decisions, recordedDecision{profile: profile, approved: approved})
}

func newAdminFixture(profiles map[string]*models.Profile) (*AdminService, *mockOrgProfileRepo, *mockOrgNotifier) {
	repo := &mockOrgProfileRepo{mockProfileFinder{profiles: profiles}}
	notifier := &mockOrgNotifier{}
	return NewAdminService(repo, notifier, nil), repo, notifier
}

func TestListPendingOrganizations(t *testing.T) {
	svc, _, _ := newAdminFixture(map[string]*models.Profile{
		"org-1":     {ID: "org-1", IsOrg: true},
		"org-2":     {ID: "org-2", IsOrg: true, IsOrgApproved: true},
		"student-1": {ID: "student-1"},
	})

	pending, err := svc.ListPendingOrganizations(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "org-1", pending[0].ID)
}

func TestDecideApprovesAndNotifies(t *testing.T) {
	svc, repo, notifier := newAdminFixture(map[string]*models.Profile{
		"org-1": {ID: "org-1", FullName: "Acme Trust", Email: "org@example.com", IsOrg: true},
	})

	profile, err := svc.Decide(context.Background(), "org-1", true)
	require.NoError(t, err)
	assert.True(t, profile.IsOrgApproved)
	assert.True(t, repo.profiles["org-1"].IsOrgApproved)

	require.Len(t, notifier.decisions, 1)
	assert.True(t, notifier.decisions[0].approved)
	assert.Equal(t, "org@example.com", notifier.decisions[0].profile.Email)
}

func TestDecideRejectsNonOrganization(t *testing.T) {
	svc, _, notifier := newAdminFixture(map[string]*models.Profile{
		"student-1": {ID: "student-1"},
	})

	_, err := svc.Decide(context.Background(), "student-1", true)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, notifier.decisions)
}

func TestDecideUnknownOrganization(t *testing.T) {
	svc, _, _ := newAdminFixture(nil)

	_, err := svc.Decide(context.Background(), "ghost", false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
