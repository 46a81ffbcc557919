package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/models"
)

func newExportFixture(t *testing.T) (*ExportService, *mockApplicationRepo) {
	t.Helper()

	appRepo := &mockApplicationRepo{}
	owner := "org-1"
	scholarships := &mockScholarshipFinder{items: map[string]*models.Scholarship{
		"sch-1": {ID: "sch-1", Name: "Merit Award", CreatedBy: &owner},
	}}
	applications := NewApplicationService(appRepo, scholarships, nil, nil, nil,
		func() time.Time { return testNow })
	profiles := &mockProfileFinder{profiles: map[string]*models.Profile{
		"student-1": {
			ID:       "student-1",
			FullName: "Asha Verma",
			Email:    "asha@example.com",
			Course:   "BSc Physics",
			GPA:      8.4,
		},
	}}
	return NewExportService(applications, profiles, nil), appRepo
}

func TestStudentApplicationsPDFRenders(t *testing.T) {
	svc, appRepo := newExportFixture(t)
	appRepo.byUser = map[string][]models.ApplicationDetail{
		"student-1": {
			{
				Application: models.Application{
					ID: "app-1", UserID: "student-1", ScholarshipID: "sch-1",
					Status: models.StatusApplied, AppliedAt: testNow,
				},
				ScholarshipName:     "Merit Award",
				ScholarshipProvider: "Acme Trust",
				ScholarshipAmount:   "50000",
				ScholarshipDeadline: testNow.AddDate(0, 1, 0),
			},
		},
	}

	out, err := svc.StudentApplicationsPDF(context.Background(), "student-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out[:5]), "%PDF-"))
}

func TestStudentApplicationsPDFEmptyList(t *testing.T) {
	svc, _ := newExportFixture(t)

	out, err := svc.StudentApplicationsPDF(context.Background(), "student-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestScholarshipApplicantsCSV(t *testing.T) {
	svc, appRepo := newExportFixture(t)
	appRepo.byUser = map[string][]models.ApplicationDetail{
		"student-1": {
			{
				Application: models.Application{
					ID: "app-1", UserID: "student-1", ScholarshipID: "sch-1",
					Status: models.StatusUnderReview, AppliedAt: testNow,
				},
				ApplicantName:   "Asha Verma",
				ApplicantEmail:  "asha@example.com",
				ApplicantCourse: "BSc Physics",
				ApplicantGPA:    8.4,
			},
		},
	}

	out, err := svc.ScholarshipApplicantsCSV(context.Background(), orgClaims("org-1"), "sch-1")
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "Applicant,Email,Course,GPA,Status,Applied On")
	assert.Contains(t, content, "Asha Verma")
	assert.Contains(t, content, "Under Review")
}

func TestScholarshipApplicantsCSVForeignOrgDenied(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.ScholarshipApplicantsCSV(context.Background(), orgClaims("org-2"), "sch-1")
	require.Error(t, err)
}
