package models

import "time"

// ApplicationStatus tracks an application through its review lifecycle.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusUnderReview ApplicationStatus = "Under Review"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// ReviewStatuses are the statuses an organization may set. The initial
// Applied status is set only at creation.
var ReviewStatuses = []ApplicationStatus{
	StatusUnderReview,
	StatusAccepted,
	StatusRejected,
}

// Application links one student to one scholarship. The store enforces at
// most one row per (user, scholarship) pair.
type Application struct {
	ID            string            `db:"id" json:"id"`
	UserID        string            `db:"user_id" json:"user_id"`
	ScholarshipID string            `db:"scholarship_id" json:"scholarship_id"`
	Status        ApplicationStatus `db:"status" json:"status"`
	AppliedAt     time.Time         `db:"applied_at" json:"applied_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// ApplicationDetail enriches an application with its scholarship listing and
// applicant identity for review and export views.
type ApplicationDetail struct {
	Application
	ScholarshipName     string    `db:"scholarship_name" json:"scholarship_name"`
	ScholarshipProvider string    `db:"scholarship_provider" json:"scholarship_provider"`
	ScholarshipAmount   string    `db:"scholarship_amount" json:"scholarship_amount"`
	ScholarshipDeadline time.Time `db:"scholarship_deadline" json:"scholarship_deadline"`
	ApplicantName       string    `db:"applicant_name" json:"applicant_name"`
	ApplicantEmail      string    `db:"applicant_email" json:"applicant_email"`
	ApplicantGPA        float64   `db:"applicant_gpa" json:"applicant_gpa"`
	ApplicantCourse     string    `db:"applicant_course" json:"applicant_course"`
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	UserID        string
	ScholarshipID string
	Status        ApplicationStatus
	Page          int
	PageSize      int
}

// ValidReviewStatus reports whether a status may be set by an organization.
func ValidReviewStatus(status ApplicationStatus) bool {
	for _, s := range ReviewStatuses {
		if status == s {
			return true
		}
	}
	return false
}
