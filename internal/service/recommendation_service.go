package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/scholarseek/scholarseek-api/internal/models"
	appErrors "github.com/scholarseek/scholarseek-api/pkg/errors"
)

// RecommendedScholarship annotates a listing with deadline proximity for
// the student dashboard.
type RecommendedScholarship struct {
	models.Scholarship
	DaysUntilDeadline     int  `json:"days_until_deadline"`
	IsDeadlineApproaching bool `json:"is_deadline_approaching"`
}

// RecommendationService computes per-student eligible listings.
type RecommendationService struct {
	scholarships scholarshipRepository
	profiles     profileFinder
	cache        listingCache
	logger       *zap.Logger
	cacheTTL     time.Duration
	now          func() time.Time
}

// NewRecommendationService constructs the recommendation service.
func NewRecommendationService(scholarships scholarshipRepository, profiles profileFinder, cache listingCache, logger *zap.Logger, cacheTTL time.Duration, now func() time.Time) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &RecommendationService{
		scholarships: scholarships,
		profiles:     profiles,
		cache:        cache,
		logger:       logger,
		cacheTTL:     cacheTTL,
		now:          now,
	}
}

// ForStudent returns the listings the student qualifies for, soonest
// deadline first, each tagged with the days remaining.
func (s *RecommendationService) ForStudent(ctx context.Context, userID string) ([]RecommendedScholarship, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to load student profile")
	}
	if profile.IsOrg {
		return nil, appErrors.Clone(appErrors.ErrNotAuthorized, "recommendations are for student accounts")
	}

	cacheKey := recommendationsCachePref + userID
	if s.cache != nil {
		var cached []RecommendedScholarship
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	all, err := s.scholarships.ListAll(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to list scholarships")
	}

	now := s.now()
	eligible := EligibleScholarships(profile, all, now)
	recommended := make([]RecommendedScholarship, 0, len(eligible))
	for _, scholarship := range eligible {
		days := DaysUntil(scholarship.Deadline, now)
		recommended = append(recommended, RecommendedScholarship{
			Scholarship:           scholarship,
			DaysUntilDeadline:     days,
			IsDeadlineApproaching: IsDeadlineApproaching(scholarship.Deadline, now),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, recommended, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache recommendations", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return recommended, nil
}
