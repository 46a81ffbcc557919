package handler

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/middleware"
	"github.com/scholarseek/scholarseek-api/internal/models"
	"github.com/scholarseek/scholarseek-api/internal/service"
)

type stubBookmarkRepo struct {
	items  map[string]*models.Bookmark
	nextID int
}

func (m *stubBookmarkRepo) FindByPair(ctx context.Context, userID, scholarshipID string) (*models.Bookmark, error) {
	for _, b := range m.items {
		if b.UserID == userID && b.ScholarshipID == scholarshipID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *stubBookmarkRepo) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if m.items == nil {
		m.items = make(map[string]*models.Bookmark)
	}
	m.nextID++
	bookmark.ID = fmt.Sprintf("bm-%d", m.nextID)
	cp := *bookmark
	m.items[bookmark.ID] = &cp
	return nil
}

func (m *stubBookmarkRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *stubBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var out []models.Bookmark
	for _, b := range m.items {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type stubScholarshipFinder struct {
	items map[string]*models.Scholarship
}

func (m *stubScholarshipFinder) FindByID(ctx context.Context, id string) (*models.Scholarship, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

// asUser injects claims the way the JWT middleware would.
func asUser(userID string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID, Role: role})
		c.Next()
	}
}

func newBookmarkRouter(repo *stubBookmarkRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	scholarships := &stubScholarshipFinder{items: map[string]*models.Scholarship{
		"sch-1": {ID: "sch-1", Name: "Merit Award"},
	}}
	h := NewBookmarkHandler(service.NewBookmarkService(repo, scholarships, nil))

	r := gin.New()
	group := r.Group("/bookmarks", asUser("student-1", models.RoleStudent))
	group.GET("", h.List)
	group.POST("/toggle", h.Toggle)
	return r
}

func TestBookmarkToggleEndpoint(t *testing.T) {
	repo := &stubBookmarkRepo{}
	router := newBookmarkRouter(repo)

	body := bytes.NewBufferString(`{"scholarship_id":"sch-1"}`)
	req, _ := http.NewRequest(http.MethodPost, "/bookmarks/toggle", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"result":"Added"`)

	body = bytes.NewBufferString(`{"scholarship_id":"sch-1"}`)
	req, _ = http.NewRequest(http.MethodPost, "/bookmarks/toggle", body)
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"result":"Removed"`)
	assert.Empty(t, repo.items)
}

func TestBookmarkToggleUnknownScholarship(t *testing.T) {
	router := newBookmarkRouter(&stubBookmarkRepo{})

	body := bytes.NewBufferString(`{"scholarship_id":"ghost"}`)
	req, _ := http.NewRequest(http.MethodPost, "/bookmarks/toggle", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBookmarkToggleMissingBody(t *testing.T) {
	router := newBookmarkRouter(&stubBookmarkRepo{})

	req, _ := http.NewRequest(http.MethodPost, "/bookmarks/toggle", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBookmarkListEndpoint(t *testing.T) {
	repo := &stubBookmarkRepo{items: map[string]*models.Bookmark{
		"bm-1": {ID: "bm-1", UserID: "student-1", ScholarshipID: "sch-1"},
		"bm-2": {ID: "bm-2", UserID: "someone-else", ScholarshipID: "sch-1"},
	}}
	router := newBookmarkRouter(repo)

	req, _ := http.NewRequest(http.MethodGet, "/bookmarks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "bm-1")
	assert.NotContains(t, resp.Body.String(), "bm-2")
}
