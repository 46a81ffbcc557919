package service

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholarseek-api/internal/models"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func listing(name string, deadline time.Time, minGPA *float64, categories ...string) models.Scholarship {
	if len(categories) == 0 {
		categories = []string{string(models.CategoryGeneral)}
	}
	return models.Scholarship{
		Name:       name,
		Provider:   name + " Trust",
		Deadline:   deadline,
		MinGPA:     minGPA,
		Categories: pq.StringArray(categories),
	}
}

func TestEligibleScholarshipsFiltersAndSorts(t *testing.T) {
	profile := &models.Profile{GPA: 7.5, Category: models.CategoryGeneral}

	scholarships := []models.Scholarship{
		listing("High Bar", testNow.AddDate(0, 1, 0), floatPtr(9.0)),
		listing("Later", testNow.AddDate(0, 2, 0), nil),
		listing("Soon", testNow.AddDate(0, 0, 3), floatPtr(7.5)),
		listing("Wrong Category", testNow.AddDate(0, 0, 5), nil, string(models.CategorySC)),
		listing("Expired", testNow.AddDate(0, 0, -1), nil),
	}

	eligible := EligibleScholarships(profile, scholarships, testNow)

	require.Len(t, eligible, 2)
	assert.Equal(t, "Soon", eligible[0].Name)
	assert.Equal(t, "Later", eligible[1].Name)
}

func TestEligibleScholarshipsGPABoundaryInclusive(t *testing.T) {
	profile := &models.Profile{GPA: 8.0, Category: models.CategoryGeneral}
	scholarships := []models.Scholarship{
		listing("Exact", testNow.AddDate(0, 0, 10), floatPtr(8.0)),
	}

	eligible := EligibleScholarships(profile, scholarships, testNow)
	require.Len(t, eligible, 1)
}

func TestEligibleScholarshipsDeadlineExactlyNowExcluded(t *testing.T) {
	profile := &models.Profile{GPA: 9.0, Category: models.CategoryGeneral}
	scholarships := []models.Scholarship{
		listing("Closing", testNow, nil),
	}

	assert.Empty(t, EligibleScholarships(profile, scholarships, testNow))
}

func TestEligibleScholarshipsStableOnDeadlineTies(t *testing.T) {
	profile := &models.Profile{GPA: 9.0, Category: models.CategoryGeneral}
	deadline := testNow.AddDate(0, 0, 14)
	scholarships := []models.Scholarship{
		listing("Alpha", deadline, nil),
		listing("Beta", deadline, nil),
		listing("Gamma", deadline, nil),
	}

	eligible := EligibleScholarships(profile, scholarships, testNow)
	require.Len(t, eligible, 3)
	assert.Equal(t, "Alpha", eligible[0].Name)
	assert.Equal(t, "Beta", eligible[1].Name)
	assert.Equal(t, "Gamma", eligible[2].Name)
}

func TestDaysUntilRoundsPartialDaysUp(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"one hour away", testNow.Add(time.Hour), 1},
		{"exactly one day", testNow.Add(24 * time.Hour), 1},
		{"one day and a minute", testNow.Add(24*time.Hour + time.Minute), 2},
		{"exactly seven days", testNow.Add(7 * 24 * time.Hour), 7},
		{"six days and change", testNow.Add(6*24*time.Hour + time.Hour), 7},
		{"exactly now", testNow, 0},
		{"an hour ago", testNow.Add(-time.Hour), 0},
		{"yesterday and change", testNow.Add(-25 * time.Hour), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.deadline, testNow))
		})
	}
}

func TestIsDeadlineApproachingWindow(t *testing.T) {
	assert.True(t, IsDeadlineApproaching(testNow.Add(time.Hour), testNow))
	assert.True(t, IsDeadlineApproaching(testNow.Add(7*24*time.Hour), testNow))
	assert.False(t, IsDeadlineApproaching(testNow.Add(7*24*time.Hour+time.Minute), testNow))
	assert.False(t, IsDeadlineApproaching(testNow, testNow))
	assert.False(t, IsDeadlineApproaching(testNow.Add(-time.Hour), testNow))
}

func TestFilterScholarshipsSearchMatchesAnyField(t *testing.T) {
	scholarships := []models.Scholarship{
		{Name: "Math Excellence Award", Provider: "Acme", Description: "for students"},
		{Name: "Science Grant", Provider: "Mathworks Foundation", Description: "lab work"},
		{Name: "Arts Stipend", Provider: "Acme", Description: "covers mathematics and music"},
		{Name: "Sports Fund", Provider: "Acme", Description: "athletics"},
	}

	got := FilterScholarships(scholarships, models.ScholarshipFilter{Search: "MATH"})

	require.Len(t, got, 3)
	assert.Equal(t, "Math Excellence Award", got[0].Name)
	assert.Equal(t, "Science Grant", got[1].Name)
	assert.Equal(t, "Arts Stipend", got[2].Name)
}

func TestFilterScholarshipsFacetsIntersect(t *testing.T) {
	scholarships := []models.Scholarship{
		{
			Name:        "Math Merit",
			Categories:  pq.StringArray{"SC", "General"},
			DegreeLevel: models.DegreeUndergraduate,
		},
		{
			Name:        "Math Aid",
			Categories:  pq.StringArray{"OBC"},
			DegreeLevel: models.DegreeUndergraduate,
		},
		{
			Name:        "History Merit",
			Categories:  pq.StringArray{"SC"},
			DegreeLevel: models.DegreeUndergraduate,
		},
	}

	got := FilterScholarships(scholarships, models.ScholarshipFilter{
		Search:      "math",
		Category:    "SC",
		DegreeLevel: FacetAll,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Math Merit", got[0].Name)
}

func TestFilterScholarshipsAllSentinelDisablesFacet(t *testing.T) {
	scholarships := []models.Scholarship{
		{Name: "A", Categories: pq.StringArray{"SC"}, DegreeLevel: models.DegreeDoctorate},
		{Name: "B", Categories: pq.StringArray{"OBC"}, DegreeLevel: models.DegreePreMatric},
	}

	got := FilterScholarships(scholarships, models.ScholarshipFilter{
		Category:    "all",
		DegreeLevel: "All",
	})
	assert.Len(t, got, 2)
}

func TestFilterScholarshipsPreservesOrder(t *testing.T) {
	scholarships := []models.Scholarship{
		{Name: "Third", Categories: pq.StringArray{"General"}},
		{Name: "First", Categories: pq.StringArray{"General"}},
		{Name: "Second", Categories: pq.StringArray{"General"}},
	}

	got := FilterScholarships(scholarships, models.ScholarshipFilter{Category: "General"})
	require.Len(t, got, 3)
	assert.Equal(t, "Third", got[0].Name)
	assert.Equal(t, "First", got[1].Name)
	assert.Equal(t, "Second", got[2].Name)
}
