package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/models"
)

func TestBookmarkFindByPair(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "scholarship_id", "created_at"}).
		AddRow("b1", "u1", "s1", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, scholarship_id, created_at FROM bookmarks WHERE user_id = $1 AND scholarship_id = $2 LIMIT 1")).
		WithArgs("u1", "s1").
		WillReturnRows(rows)

	bookmark, err := repo.FindByPair(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, "b1", bookmark.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkFindByPairAbsent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectQuery("SELECT id, user_id, scholarship_id").
		WithArgs("u1", "s1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByPair(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	mock.ExpectExec("INSERT INTO bookmarks").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookmarks WHERE id = $1")).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	bookmark := &models.Bookmark{ID: "b1", UserID: "u1", ScholarshipID: "s1"}
	require.NoError(t, repo.Create(context.Background(), bookmark))
	require.NoError(t, repo.Delete(context.Background(), "b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkListByUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookmarkRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "scholarship_id", "created_at"}).
		AddRow("b2", "u1", "s2", now).
		AddRow("b1", "u1", "s1", now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, user_id, scholarship_id, created_at FROM bookmarks WHERE user_id").
		WithArgs("u1").
		WillReturnRows(rows)

	bookmarks, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	assert.Equal(t, "b2", bookmarks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
