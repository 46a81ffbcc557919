package models

import (
	"time"

	"github.com/lib/pq"
)

// DegreeLevel enumerates the academic levels a scholarship targets.
type DegreeLevel string

const (
	DegreeAll           DegreeLevel = "All"
	DegreePreMatric     DegreeLevel = "Pre-Matric"
	DegreeUndergraduate DegreeLevel = "Undergraduate"
	DegreePostgraduate  DegreeLevel = "Postgraduate"
	DegreeDoctorate     DegreeLevel = "Doctorate"
	DegreePostDoctorate DegreeLevel = "Post-Doctorate"
)

// DegreeLevels lists every accepted degree level.
var DegreeLevels = []DegreeLevel{
	DegreeAll,
	DegreePreMatric,
	DegreeUndergraduate,
	DegreePostgraduate,
	DegreeDoctorate,
	DegreePostDoctorate,
}

// Scholarship is a listing created by an organization. Categories is a
// non-empty Postgres text[] of eligibility tags.
type Scholarship struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Provider    string         `db:"provider" json:"provider"`
	Eligibility string         `db:"eligibility" json:"eligibility"`
	DegreeLevel DegreeLevel    `db:"degree_level" json:"degree_level"`
	Categories  pq.StringArray `db:"category" json:"category"`
	MinGPA      *float64       `db:"min_gpa" json:"min_gpa,omitempty"`
	Amount      string         `db:"amount" json:"amount"`
	Deadline    time.Time      `db:"deadline" json:"deadline"`
	Link        string         `db:"link" json:"link"`
	State       *string        `db:"state" json:"state,omitempty"`
	CreatedBy   *string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// HasCategory reports membership of a tag in the scholarship's category set.
func (s *Scholarship) HasCategory(c Category) bool {
	for _, tag := range s.Categories {
		if Category(tag) == c {
			return true
		}
	}
	return false
}

// ScholarshipFilter captures the search and facet dimensions applied to
// listings. The "all" sentinel (or empty value) disables a facet.
type ScholarshipFilter struct {
	Search      string
	Category    string
	DegreeLevel string
	CreatedBy   string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

// ValidDegreeLevel reports whether the level belongs to the enum.
func ValidDegreeLevel(level DegreeLevel) bool {
	for _, known := range DegreeLevels {
		if level == known {
			return true
		}
	}
	return false
}
