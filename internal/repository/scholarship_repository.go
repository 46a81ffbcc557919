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

const scholarshipColumns = `id, name, description, provider, eligibility, degree_level, category,
        min_gpa, amount, deadline, link, state, created_by, created_at, updated_at`

// ScholarshipRepository manages persistence for scholarship listings.
type ScholarshipRepository struct {
	db *sqlx.DB
}

// NewScholarshipRepository constructs a ScholarshipRepository.
func NewScholarshipRepository(db *sqlx.DB) *ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

// ListAll returns every listing ordered newest first, optionally restricted
// to a creator. Search and facet filtering happen in memory in the service
// layer, so the repository stays a plain ordered fetch.
func (r *ScholarshipRepository) ListAll(ctx context.Context, createdBy string) ([]models.Scholarship, error) {
	query := fmt.Sprintf(`SELECT %s FROM scholarships`, scholarshipColumns)
	args := []interface{}{}
	if createdBy != "" {
		query += " WHERE created_by = $1"
		args = append(args, createdBy)
	}
	query += " ORDER BY created_at DESC"

	var scholarships []models.Scholarship
	if err := r.db.SelectContext(ctx, &scholarships, query, args...); err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}
	return scholarships, nil
}

// FindByID fetches a single listing.
func (r *ScholarshipRepository) FindByID(ctx context.Context, id string) (*models.Scholarship, error) {
	query := fmt.Sprintf(`SELECT %s FROM scholarships WHERE id = $1 LIMIT 1`, scholarshipColumns)
	var scholarship models.Scholarship
	if err := r.db.GetContext(ctx, &scholarship, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find scholarship: %w", err)
	}
	return &scholarship, nil
}

// Create inserts a new listing.
func (r *ScholarshipRepository) Create(ctx context.Context, scholarship *models.Scholarship) error {
	if scholarship.ID == "" {
		scholarship.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if scholarship.CreatedAt.IsZero() {
		scholarship.CreatedAt = now
	}
	scholarship.UpdatedAt = now
	const query = `INSERT INTO scholarships (id, name, description, provider, eligibility, degree_level, category,
        min_gpa, amount, deadline, link, state, created_by, created_at, updated_at)
        VALUES (:id, :name, :description, :provider, :eligibility, :degree_level, :category,
        :min_gpa, :amount, :deadline, :link, :state, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, scholarship); err != nil {
		return fmt.Errorf("create scholarship: %w", err)
	}
	return nil
}

// Update modifies an existing listing.
func (r *ScholarshipRepository) Update(ctx context.Context, scholarship *models.Scholarship) error {
	scholarship.UpdatedAt = time.Now().UTC()
	const query = `UPDATE scholarships SET name = :name, description = :description, provider = :provider,
        eligibility = :eligibility, degree_level = :degree_level, category = :category,
        min_gpa = :min_gpa, amount = :amount, deadline = :deadline, link = :link, state = :state,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, scholarship); err != nil {
		return fmt.Errorf("update scholarship: %w", err)
	}
	return nil
}

// Delete removes a listing.
func (r *ScholarshipRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM scholarships WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete scholarship: %w", err)
	}
	return nil
}
