package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

// pqUniqueViolation is the SQLSTATE raised when the (user_id, scholarship_id)
// unique index rejects a second submission.
const pqUniqueViolation = "23505"

// ApplicationRepository manages persistence for scholarship applications.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts a new application with status Applied. A duplicate
// (user, scholarship) pair surfaces the store's uniqueness violation as
// ErrDuplicateApplication; there is deliberately no pre-check, which keeps
// concurrent submissions from racing past each other.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = models.StatusApplied
	}
	const query = `INSERT INTO applications (id, user_id, scholarship_id, status, applied_at, updated_at)
        VALUES (:id, :user_id, :scholarship_id, :status, :applied_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, app); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return appErrors.ErrDuplicateApplication
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

// FindByID fetches a single application row.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	const query = `SELECT id, user_id, scholarship_id, status, applied_at, updated_at FROM applications WHERE id = $1 LIMIT 1`
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

// ListByUser returns a student's applications with scholarship details,
// newest first.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]models.ApplicationDetail, error) {
	const query = `SELECT a.id, a.user_id, a.scholarship_id, a.status, a.applied_at, a.updated_at,
        s.name AS scholarship_name, s.provider AS scholarship_provider,
        s.amount AS scholarship_amount, s.deadline AS scholarship_deadline,
        p.full_name AS applicant_name, p.email AS applicant_email,
        p.gpa AS applicant_gpa, p.course AS applicant_course
        FROM applications a
        JOIN scholarships s ON s.id = a.scholarship_id
        JOIN profiles p ON p.id = a.user_id
        WHERE a.user_id = $1
        ORDER BY a.applied_at DESC`
	var details []models.ApplicationDetail
	if err := r.db.SelectContext(ctx, &details, query, userID); err != nil {
		return nil, fmt.Errorf("list applications by user: %w", err)
	}
	return details, nil
}

// ListByScholarship returns the applications submitted against one listing,
// optionally narrowed by status, with applicant details for review screens.
func (r *ApplicationRepository) ListByScholarship(ctx context.Context, scholarshipID string, status models.ApplicationStatus) ([]models.ApplicationDetail, error) {
	query := `SELECT a.id, a.user_id, a.scholarship_id, a.status, a.applied_at, a.updated_at,
        s.name AS scholarship_name, s.provider AS scholarship_provider,
        s.amount AS scholarship_amount, s.deadline AS scholarship_deadline,
        p.full_name AS applicant_name, p.email AS applicant_email,
        p.gpa AS applicant_gpa, p.course AS applicant_course
        FROM applications a
        JOIN scholarships s ON s.id = a.scholarship_id
        JOIN profiles p ON p.id = a.user_id
        WHERE a.scholarship_id = $1`
	args := []interface{}{scholarshipID}
	if status != "" {
		query += " AND a.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY a.applied_at ASC"

	var details []models.ApplicationDetail
	if err := r.db.SelectContext(ctx, &details, query, args...); err != nil {
		return nil, fmt.Errorf("list applications by scholarship: %w", err)
	}
	return details, nil
}

// UpdateStatus sets a review status and refreshes updated_at.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, updatedAt time.Time) error {
	const query = `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, updatedAt); err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	return nil
}

// Delete removes an application unconditionally (student withdrawal).
func (r *ApplicationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM applications WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}
