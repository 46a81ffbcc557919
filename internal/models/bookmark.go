package models

import "time"

// Bookmark is a student's saved-for-later marker on a scholarship,
// independent of application state. At most one per (user, scholarship).
type Bookmark struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	ScholarshipID string    `db:"scholarship_id" json:"scholarship_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// BookmarkToggleResult reports the outcome of a toggle operation.
type BookmarkToggleResult string

const (
	BookmarkAdded   BookmarkToggleResult = "Added"
	BookmarkRemoved BookmarkToggleResult = "Removed"
)
