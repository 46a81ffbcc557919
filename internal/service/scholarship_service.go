package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

const (
	listingsCacheKey            = "scholarships:all"
	recommendationsCachePref    = "recommendations:"
	listingsCachePattern        = "scholarships:*"
	recommendationsCachePattern = "recommendations:*"
)

type scholarshipRepository interface {
	ListAll(ctx context.Context, createdBy string) ([]models.Scholarship, error)
	FindByID(ctx context.Context, id string) (*models.Scholarship, error)
	Create(ctx context.Context, scholarship *models.Scholarship) error
	Update(ctx context.Context, scholarship *models.Scholarship) error
	Delete(ctx context.Context, id string) error
}

type listingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type profileFinder interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// CreateScholarshipRequest holds payload for creating listings.
type CreateScholarshipRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Provider    string    `json:"provider" validate:"required"`
	Eligibility string    `json:"eligibility" validate:"required"`
	DegreeLevel string    `json:"degree_level" validate:"required"`
	Categories  []string  `json:"category" validate:"required,min=1"`
	MinGPA      *float64  `json:"min_gpa" validate:"omitempty,gte=0,lte=10"`
	Amount      string    `json:"amount" validate:"required"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Link        string    `json:"link" validate:"required,url"`
	State       *string   `json:"state"`
}

// UpdateScholarshipRequest mirrors the create payload for full updates.
type UpdateScholarshipRequest = CreateScholarshipRequest

// ScholarshipService handles listing use-cases for students and
// organizations.
type ScholarshipService struct {
	repo      scholarshipRepository
	profiles  profileFinder
	cache     listingCache
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
	metrics   *MetricsService
	now       func() time.Time
}

// ScholarshipServiceParams groups constructor dependencies.
type ScholarshipServiceParams struct {
	Repo      scholarshipRepository
	Profiles  profileFinder
	Cache     listingCache
	Validator *validator.Validate
	Logger    *zap.Logger
	CacheTTL  time.Duration
	Metrics   *MetricsService
	Now       func() time.Time
}

// NewScholarshipService constructs the scholarship service.
func NewScholarshipService(p ScholarshipServiceParams) *ScholarshipService {
	if p.Validator == nil {
		p.Validator = validator.New()
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Now == nil {
		p.Now = func() time.Time { return time.Now().UTC() }
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = 5 * time.Minute
	}
	return &ScholarshipService{
		repo:      p.Repo,
		profiles:  p.Profiles,
		cache:     p.Cache,
		validator: p.Validator,
		logger:    p.Logger,
		cacheTTL:  p.CacheTTL,
		metrics:   p.Metrics,
		now:       p.Now,
	}
}

// List returns listings matching the search term and facets, paginated.
// Filtering runs in memory over the full cached listing set.
func (s *ScholarshipService) List(ctx context.Context, filter models.ScholarshipFilter) ([]models.Scholarship, *models.Pagination, error) {
	all, err := s.loadListings(ctx, filter.CreatedBy)
	if err != nil {
		return nil, nil, err
	}

	filtered := FilterScholarships(all, filter)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(filtered)}

	start := (page - 1) * size
	if start >= len(filtered) {
		return []models.Scholarship{}, pagination, nil
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], pagination, nil
}

// Get returns a single listing.
func (s *ScholarshipService) Get(ctx context.Context, id string) (*models.Scholarship, error) {
	scholarship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "scholarship not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load scholarship")
	}
	return scholarship, nil
}

// Create registers a new listing for an approved organization.
func (s *ScholarshipService) Create(ctx context.Context, claims *models.JWTClaims, req CreateScholarshipRequest) (*models.Scholarship, error) {
	if err := s.authorizeOrg(ctx, claims); err != nil {
		return nil, err
	}
	if err := s.validateListing(req); err != nil {
		return nil, err
	}

	creator := claims.UserID
	scholarship := &models.Scholarship{
		Name:        req.Name,
		Description: req.Description,
		Provider:    req.Provider,
		Eligibility: req.Eligibility,
		DegreeLevel: models.DegreeLevel(req.DegreeLevel),
		Categories:  pq.StringArray(req.Categories),
		MinGPA:      req.MinGPA,
		Amount:      req.Amount,
		Deadline:    req.Deadline,
		Link:        req.Link,
		State:       req.State,
		CreatedBy:   &creator,
	}
	if err := s.repo.Create(ctx, scholarship); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to create scholarship")
	}
	s.invalidateListings(ctx)
	return scholarship, nil
}

// Update modifies a listing owned by the caller.
func (s *ScholarshipService) Update(ctx context.Context, claims *models.JWTClaims, id string, req UpdateScholarshipRequest) (*models.Scholarship, error) {
	if err := s.authorizeOrg(ctx, claims); err != nil {
		return nil, err
	}
	if err := s.validateListing(req); err != nil {
		return nil, err
	}

	scholarship, err := s.ownedListing(ctx, claims, id)
	if err != nil {
		return nil, err
	}

	scholarship.Name = req.Name
	scholarship.Description = req.Description
	scholarship.Provider = req.Provider
	scholarship.Eligibility = req.Eligibility
	scholarship.DegreeLevel = models.DegreeLevel(req.DegreeLevel)
	scholarship.Categories = pq.StringArray(req.Categories)
	scholarship.MinGPA = req.MinGPA
	scholarship.Amount = req.Amount
	scholarship.Deadline = req.Deadline
	scholarship.Link = req.Link
	scholarship.State = req.State

	if err := s.repo.Update(ctx, scholarship); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to update scholarship")
	}
	s.invalidateListings(ctx)
	return scholarship, nil
}

// Delete removes a listing owned by the caller.
func (s *ScholarshipService) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	if err := s.authorizeOrg(ctx, claims); err != nil {
		return err
	}
	if _, err := s.ownedListing(ctx, claims, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to delete scholarship")
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *ScholarshipService) loadListings(ctx context.Context, createdBy string) ([]models.Scholarship, error) {
	// Only the unrestricted listing set is cached; per-creator views go
	// straight to the store.
	if createdBy == "" && s.cache != nil {
		var cached []models.Scholarship
		start := s.now()
		if err := s.cache.Get(ctx, listingsCacheKey, &cached); err == nil {
			s.metrics.RecordCacheOperation(true, time.Since(start))
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false, time.Since(start))
	}

	all, err := s.repo.ListAll(ctx, createdBy)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list scholarships")
	}

	if createdBy == "" && s.cache != nil {
		if err := s.cache.Set(ctx, listingsCacheKey, all, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache scholarship listings", zap.Error(err))
		}
	}
	return all, nil
}

func (s *ScholarshipService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{listingsCachePattern, recommendationsCachePattern} {
		if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("failed to invalidate listing cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

func (s *ScholarshipService) validateListing(req CreateScholarshipRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scholarship payload")
	}
	if !models.ValidDegreeLevel(models.DegreeLevel(req.DegreeLevel)) {
		return appErrors.Clone(appErrors.ErrValidation, "unknown degree level")
	}
	for _, tag := range req.Categories {
		if !models.ValidCategory(models.Category(tag)) {
			return appErrors.Clone(appErrors.ErrValidation, "unknown category tag: "+tag)
		}
	}
	return nil
}

// authorizeOrg requires an approved organization account (or the super
// admin, who may manage any listing surface).
func (s *ScholarshipService) authorizeOrg(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if claims.Role == models.RoleSuperAdmin {
		return nil
	}
	if claims.Role != models.RoleOrganization {
		return appErrors.Clone(appErrors.ErrNotAuthorized, "only organizations manage scholarships")
	}
	profile, err := s.profiles.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "organization profile not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load organization profile")
	}
	if !profile.IsOrgApproved {
		return appErrors.Clone(appErrors.ErrOrgNotApproved, "organization account pending approval")
	}
	return nil
}

func (s *ScholarshipService) ownedListing(ctx context.Context, claims *models.JWTClaims, id string) (*models.Scholarship, error) {
	scholarship, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if claims.Role != models.RoleSuperAdmin {
		if scholarship.CreatedBy == nil || *scholarship.CreatedBy != claims.UserID {
			return nil, appErrors.Clone(appErrors.ErrNotAuthorized, "scholarship belongs to another organization")
		}
	}
	return scholarship, nil
}
