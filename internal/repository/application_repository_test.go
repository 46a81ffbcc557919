package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestApplicationCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec("INSERT INTO applications").WillReturnResult(sqlmock.NewResult(1, 1))

	app := &models.Application{UserID: "u1", ScholarshipID: "s1"}
	require.NoError(t, repo.Create(context.Background(), app))
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "applications_user_id_scholarship_id_key"})

	err := repo.Create(context.Background(), &models.Application{UserID: "u1", ScholarshipID: "s1"})
	require.Error(t, err)

	var domainErr *appErrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, appErrors.ErrDuplicateApplication.Code, domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreateOtherErrorPassesThrough(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec("INSERT INTO applications").
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Create(context.Background(), &models.Application{UserID: "u1", ScholarshipID: "ghost"})
	require.Error(t, err)

	var domainErr *appErrors.Error
	assert.False(t, errors.As(err, &domainErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectQuery("SELECT id, user_id, scholarship_id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationListByUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "scholarship_id", "status", "applied_at", "updated_at",
		"scholarship_name", "scholarship_provider", "scholarship_amount", "scholarship_deadline",
		"applicant_name", "applicant_email", "applicant_gpa", "applicant_course",
	}).AddRow("a1", "u1", "s1", "Applied", now, now,
		"Merit Award", "Acme Trust", "50000", now.AddDate(0, 1, 0),
		"Asha Verma", "asha@example.com", 8.4, "BSc Physics")

	mock.ExpectQuery("SELECT a.id, a.user_id").
		WithArgs("u1").
		WillReturnRows(rows)

	details, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Merit Award", details[0].ScholarshipName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationListByScholarshipWithStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "scholarship_id", "status", "applied_at", "updated_at",
		"scholarship_name", "scholarship_provider", "scholarship_amount", "scholarship_deadline",
		"applicant_name", "applicant_email", "applicant_gpa", "applicant_course",
	})
	mock.ExpectQuery("SELECT a.id, a.user_id").
		WithArgs("s1", string(models.StatusAccepted)).
		WillReturnRows(rows)

	details, err := repo.ListByScholarship(context.Background(), "s1", models.StatusAccepted)
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationUpdateStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("a1", string(models.StatusUnderReview), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "a1", models.StatusUnderReview, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewApplicationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applications WHERE id = $1")).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
