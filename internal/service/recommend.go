package service

import (
	"sort"
	"strings"
	"time"

	"github.com/scholarseek/scholarseek-api/internal/models"
)

// FacetAll is the sentinel disabling a category or degree-level facet.
const FacetAll = "all"

const approachingWindowDays = 7

// EligibleScholarships returns the subset of scholarships the profile
// qualifies for, soonest deadline first. A scholarship qualifies when it has
// no minimum GPA or the profile meets it, the profile's category is in the
// scholarship's category set, and the deadline is strictly in the future.
// The sort is stable so listings sharing a deadline keep their input order.
func EligibleScholarships(profile *models.Profile, scholarships []models.Scholarship, now time.Time) []models.Scholarship {
	eligible := make([]models.Scholarship, 0, len(scholarships))
	for _, s := range scholarships {
		if s.MinGPA != nil && profile.GPA < *s.MinGPA {
			continue
		}
		if !s.HasCategory(profile.Category) {
			continue
		}
		if !s.Deadline.After(now) {
			continue
		}
		eligible = append(eligible, s)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Deadline.Before(eligible[j].Deadline)
	})
	return eligible
}

// DaysUntil counts whole days from now to the deadline, rounding partial
// days up. One hour away counts as 1; six days and change counts as 7.
func DaysUntil(deadline, now time.Time) int {
	diff := deadline.Sub(now)
	days := diff / (24 * time.Hour)
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}

// IsDeadlineApproaching reports whether a deadline falls within the next
// seven days. A deadline exactly now or in the past is not approaching.
func IsDeadlineApproaching(deadline, now time.Time) bool {
	days := DaysUntil(deadline, now)
	return days > 0 && days <= approachingWindowDays
}

// FilterScholarships applies the free-text search and the category and
// degree-level facets over an in-memory listing. Dimensions intersect; the
// search term matches name, provider or description case-insensitively;
// input order is preserved.
func FilterScholarships(scholarships []models.Scholarship, filter models.ScholarshipFilter) []models.Scholarship {
	filtered := scholarships

	if term := strings.TrimSpace(filter.Search); term != "" {
		term = strings.ToLower(term)
		matched := make([]models.Scholarship, 0, len(filtered))
		for _, s := range filtered {
			if strings.Contains(strings.ToLower(s.Name), term) ||
				strings.Contains(strings.ToLower(s.Provider), term) ||
				strings.Contains(strings.ToLower(s.Description), term) {
				matched = append(matched, s)
			}
		}
		filtered = matched
	}

	if filter.Category != "" && !strings.EqualFold(filter.Category, FacetAll) {
		matched := make([]models.Scholarship, 0, len(filtered))
		for _, s := range filtered {
			if s.HasCategory(models.Category(filter.Category)) {
				matched = append(matched, s)
			}
		}
		filtered = matched
	}

	if filter.DegreeLevel != "" && !strings.EqualFold(filter.DegreeLevel, FacetAll) {
		matched := make([]models.Scholarship, 0, len(filtered))
		for _, s := range filtered {
			if s.DegreeLevel == models.DegreeLevel(filter.DegreeLevel) {
				matched = append(matched, s)
			}
		}
		filtered = matched
	}

	return filtered
}
