package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

type mockScholarshipRepo struct {
	mockScholarshipFinder
	all     []models.Scholarship
	deleted []string
}

func (m *mockScholarshipRepo) ListAll(ctx context.Context, createdBy string) ([]models.Scholarship, error) {
	if createdBy == "" {
		return m.all, nil
	}
	var out []models.Scholarship
	for _, s := range m.all {
		if s.CreatedBy != nil && *s.CreatedBy == createdBy {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScholarshipRepo) Create(ctx context.Context, scholarship *models.Scholarship) error {
	scholarship.ID = "sch-new"
	if m.items == nil {
		m.items = make(map[string]*models.Scholarship)
	}
	cp := *scholarship
	m.items[scholarship.ID] = &cp
	m.all = append(m.all, cp)
	return nil
}

func (m *mockScholarshipRepo) Update(ctx context.Context, scholarship *models.Scholarship) error {
	if _, ok := m.items[scholarship.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *scholarship
	m.items[scholarship.ID] = &cp
	return nil
}

func (m *mockScholarshipRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockProfileFinder struct {
	profiles map[string]*models.Profile
}

func (m *mockProfileFinder) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	if p, ok := m.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func newScholarshipFixture(all []models.Scholarship, profiles map[string]*models.Profile) (*ScholarshipService, *mockScholarshipRepo) {
	repo := &mockScholarshipRepo{all: all}
	repo.items = make(map[string]*models.Scholarship)
	for i := range all {
		cp := all[i]
		repo.items[cp.ID] = &cp
	}
	svc := NewScholarshipService(ScholarshipServiceParams{
		Repo:     repo,
		Profiles: &mockProfileFinder{profiles: profiles},
		Now:      func() time.Time { return testNow },
	})
	return svc, repo
}

func approvedOrg(id string) map[string]*models.Profile {
	return map[string]*models.Profile{
		id: {ID: id, IsOrg: true, IsOrgApproved: true},
	}
}

func validListingRequest() CreateScholarshipRequest {
	return CreateScholarshipRequest{
		Name:        "Merit Award",
		Description: "Awarded for academic merit",
		Provider:    "Acme Trust",
		Eligibility: "Open to all undergraduates",
		DegreeLevel: string(models.DegreeUndergraduate),
		Categories:  []string{"General", "SC"},
		Amount:      "50000",
		Deadline:    testNow.AddDate(0, 3, 0),
		Link:        "https://example.com/apply",
	}
}

func TestListAppliesFiltersAndPaginates(t *testing.T) {
	var all []models.Scholarship
	for i := 0; i < 25; i++ {
		all = append(all, models.Scholarship{
			ID:         fmt.Sprintf("sch-%d", i),
			Name:       "Grant",
			Categories: []string{"General"},
		})
	}
	svc, _ := newScholarshipFixture(all, nil)

	page, pagination, err := svc.List(context.Background(), models.ScholarshipFilter{
		Category: "General",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Len(t, page, 10)
	assert.Equal(t, 25, pagination.TotalCount)
	assert.Equal(t, "sch-10", page[0].ID)
}

func TestListPageBeyondEndIsEmpty(t *testing.T) {
	svc, _ := newScholarshipFixture([]models.Scholarship{{ID: "sch-1"}}, nil)

	page, pagination, err := svc.List(context.Background(), models.ScholarshipFilter{Page: 5, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestCreateRequiresApprovedOrganization(t *testing.T) {
	svc, _ := newScholarshipFixture(nil, map[string]*models.Profile{
		"org-1": {ID: "org-1", IsOrg: true, IsOrgApproved: false},
	})

	_, err := svc.Create(context.Background(), orgClaims("org-1"), validListingRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrOrgNotApproved.Code, appErrors.FromError(err).Code)
}

func TestCreateRejectsStudents(t *testing.T) {
	svc, _ := newScholarshipFixture(nil, nil)

	claims := &models.JWTClaims{UserID: "student-1", Role: models.RoleStudent}
	_, err := svc.Create(context.Background(), claims, validListingRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestCreateValidatesCategoryAndDegree(t *testing.T) {
	svc, _ := newScholarshipFixture(nil, approvedOrg("org-1"))

	req := validListingRequest()
	req.Categories = []string{"Unknown"}
	_, err := svc.Create(context.Background(), orgClaims("org-1"), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	req = validListingRequest()
	req.DegreeLevel = "Diploma"
	_, err = svc.Create(context.Background(), orgClaims("org-1"), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateStampsCreator(t *testing.T) {
	svc, _ := newScholarshipFixture(nil, approvedOrg("org-1"))

	created, err := svc.Create(context.Background(), orgClaims("org-1"), validListingRequest())
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "org-1", *created.CreatedBy)
}

func TestUpdateForeignListingDenied(t *testing.T) {
	owner := "org-1"
	svc, _ := newScholarshipFixture([]models.Scholarship{
		{ID: "sch-1", CreatedBy: &owner},
	}, approvedOrg("org-2"))

	_, err := svc.Update(context.Background(), orgClaims("org-2"), "sch-1", validListingRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotAuthorized.Code, appErrors.FromError(err).Code)
}

func TestDeleteOwnListing(t *testing.T) {
	owner := "org-1"
	svc, repo := newScholarshipFixture([]models.Scholarship{
		{ID: "sch-1", CreatedBy: &owner},
	}, approvedOrg("org-1"))

	require.NoError(t, svc.Delete(context.Background(), orgClaims("org-1"), "sch-1"))
	assert.Equal(t, []string{"sch-1"}, repo.deleted)
}

func TestSuperAdminBypassesOwnership(t *testing.T) {
	owner := "org-1"
	svc, repo := newScholarshipFixture([]models.Scholarship{
		{ID: "sch-1", CreatedBy: &owner},
	}, nil)

	claims := &models.JWTClaims{UserID: "admin-1", Role: models.RoleSuperAdmin}
	require.NoError(t, svc.Delete(context.Background(), claims, "sch-1"))
	assert.Equal(t, []string{"sch-1"}, repo.deleted)
}
