package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/scholarseek/scholarseek-api/internal/models"
)

const profileColumns = `id, full_name, email, course, department, gpa, category, nationality,
        aadhaar_number, abc_id_number, photo_url, income_certificate_url,
        financial_background, interests, is_org, is_org_approved, created_at, updated_at`

// ProfileRepository manages persistence for student and organization profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByID fetches a profile by its owner's user id.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1 LIMIT 1`, profileColumns)
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// Create inserts a new profile. The id equals the owning user's id.
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	const query = `INSERT INTO profiles (id, full_name, email, course, department, gpa, category, nationality,
        aadhaar_number, abc_id_number, photo_url, income_certificate_url,
        financial_background, interests, is_org, is_org_approved, created_at, updated_at)
        VALUES (:id, :full_name, :email, :course, :department, :gpa, :category, :nationality,
        :aadhaar_number, :abc_id_number, :photo_url, :income_certificate_url,
        :financial_background, :interests, :is_org, :is_org_approved, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Update modifies an existing profile. Only owner-mutable fields change.
func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	const query = `UPDATE profiles SET full_name = :full_name, course = :course, department = :department,
        gpa = :gpa, category = :category, nationality = :nationality,
        aadhaar_number = :aadhaar_number, abc_id_number = :abc_id_number,
        financial_background = :financial_background, interests = :interests,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// UpdateDocumentURL stores an uploaded document reference on the profile.
// Column is restricted to the two known upload targets.
func (r *ProfileRepository) UpdateDocumentURL(ctx context.Context, id, column, url string) error {
	if column != "photo_url" && column != "income_certificate_url" {
		return fmt.Errorf("unsupported document column %q", column)
	}
	query := fmt.Sprintf(`UPDATE profiles SET %s = $2, updated_at = $3 WHERE id = $1`, column)
	if _, err := r.db.ExecContext(ctx, query, id, url, time.Now().UTC()); err != nil {
		return fmt.Errorf("update document url: %w", err)
	}
	return nil
}

// ListPendingOrganizations returns organization profiles awaiting approval.
func (r *ProfileRepository) ListPendingOrganizations(ctx context.Context) ([]models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE is_org = true AND is_org_approved = false ORDER BY created_at ASC`, profileColumns)
	var profiles []models.Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list pending organizations: %w", err)
	}
	return profiles, nil
}

// SetOrgApproval flips the approval flag on an organization profile.
func (r *ProfileRepository) SetOrgApproval(ctx context.Context, id string, approved bool) error {
	const query = `UPDATE profiles SET is_org_approved = $2, updated_at = $3 WHERE id = $1 AND is_org = true`
	result, err := r.db.ExecContext(ctx, query, id, approved, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set org approval: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
