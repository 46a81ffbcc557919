package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
	"github.com/scholarseek/scholarseek-api/pkg/export"
)

// ExportService renders application data into downloadable files.
type ExportService struct {
	applications *ApplicationService
	profiles     profileFinder
	pdf          *export.PDFExporter
	csv          *export.CSVExporter
	logger       *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(applications *ApplicationService, profiles profileFinder, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		applications: applications,
		profiles:     profiles,
		pdf:          export.NewPDFExporter(),
		csv:          export.NewCSVExporter(),
		logger:       logger,
	}
}

// StudentApplicationsPDF renders the caller's applications as a PDF.
func (s *ExportService) StudentApplicationsPDF(ctx context.Context, userID string) ([]byte, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load profile")
	}
	apps, err := s.applications.ListMine(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := export.ApplicationsDocument{
		StudentName: profile.FullName,
		Email:       profile.Email,
		Course:      profile.Course,
		Department:  profile.Department,
		GPA:         profile.GPA,
		Entries:     make([]export.ApplicationEntry, 0, len(apps)),
	}
	for _, app := range apps {
		doc.Entries = append(doc.Entries, export.ApplicationEntry{
			Name:      app.ScholarshipName,
			Provider:  app.ScholarshipProvider,
			Amount:    app.ScholarshipAmount,
			Deadline:  app.ScholarshipDeadline.Format("02 Jan 2006"),
			Status:    string(app.Status),
			AppliedAt: app.AppliedAt.Format("02 Jan 2006"),
		})
	}

	out, err := s.pdf.Render(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return out, nil
}

// ScholarshipApplicantsCSV renders the applicant roster for a listing the
// caller owns as CSV.
func (s *ExportService) ScholarshipApplicantsCSV(ctx context.Context, claims *models.JWTClaims, scholarshipID string) ([]byte, error) {
	apps, err := s.applications.ListForScholarship(ctx, claims, scholarshipID, "")
	if err != nil {
		return nil, err
	}

	data := export.Dataset{
		Headers: []string{"Applicant", "Email", "Course", "GPA", "Status", "Applied On"},
		Rows:    make([][]string, 0, len(apps)),
	}
	for _, app := range apps {
		data.Rows = append(data.Rows, []string{
			app.ApplicantName,
			app.ApplicantEmail,
			app.ApplicantCourse,
			strconv.FormatFloat(app.ApplicantGPA, 'f', 2, 64),
			string(app.Status),
			app.AppliedAt.Format("2006-01-02"),
		})
	}

	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return out, nil
}

// ExportFilename builds a stable download name for a given format.
func ExportFilename(prefix, format string) string {
	return fmt.Sprintf("%s-export.%s", prefix, format)
}
