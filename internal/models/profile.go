package models

import "time"

// Category is an eligibility tag used to match profiles to scholarships.
type Category string

const (
	CategoryGeneral  Category = "General"
	CategorySC       Category = "SC"
	CategoryST       Category = "ST"
	CategoryOBC      Category = "OBC"
	CategoryMinority Category = "Minority"
	CategoryFemale   Category = "Female"
)

// Categories lists every known eligibility tag.
var Categories = []Category{
	CategoryGeneral,
	CategorySC,
	CategoryST,
	CategoryOBC,
	CategoryMinority,
	CategoryFemale,
}

// Profile is a user's academic/identity record. Organization accounts share
// the table: IsOrg marks them and IsOrgApproved gates listing management.
type Profile struct {
	ID                   string    `db:"id" json:"id"`
	FullName             string    `db:"full_name" json:"full_name"`
	Email                string    `db:"email" json:"email"`
	Course               string    `db:"course" json:"course"`
	Department           string    `db:"department" json:"department"`
	GPA                  float64   `db:"gpa" json:"gpa"`
	Category             Category  `db:"category" json:"category"`
	Nationality          string    `db:"nationality" json:"nationality"`
	AadhaarNumber        *string   `db:"aadhaar_number" json:"aadhaar_number,omitempty"`
	ABCIDNumber          *string   `db:"abc_id_number" json:"abc_id_number,omitempty"`
	PhotoURL             *string   `db:"photo_url" json:"photo_url,omitempty"`
	IncomeCertificateURL *string   `db:"income_certificate_url" json:"income_certificate_url,omitempty"`
	FinancialBackground  *string   `db:"financial_background" json:"financial_background,omitempty"`
	Interests            *string   `db:"interests" json:"interests,omitempty"`
	IsOrg                bool      `db:"is_org" json:"is_org"`
	IsOrgApproved        bool      `db:"is_org_approved" json:"is_org_approved"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// ValidCategory reports whether the tag belongs to the closed category set.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
