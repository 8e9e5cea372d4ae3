package entities

import (
	"time"
)

// ReadingStatus is the reading-list status of a work for a user.
type ReadingStatus string

const (
	StatusPlanned   ReadingStatus = "planned"
	StatusReading   ReadingStatus = "reading"
	StatusCompleted ReadingStatus = "completed"
	StatusDropped   ReadingStatus = "dropped"
)

// ValidReadingStatus reports whether s is a known status value.
func ValidReadingStatus(s ReadingStatus) bool {
	switch s {
	case StatusPlanned, StatusReading, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// UserBook is an entry in a user's personal reading list. At most one
// entry exists per (user, work) pair.
type UserBook struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"index;uniqueIndex:uq_user_work" json:"user_id"`
	WorkOLID        string        `gorm:"column:work_olid;size:50;index;uniqueIndex:uq_user_work" json:"work_olid"`
	Status          ReadingStatus `gorm:"size:20;default:'planned'" json:"status"`
	ProgressPercent int           `gorm:"default:0" json:"progress_percent"`
	Rating          *int          `json:"rating,omitempty"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	FinishedAt      *time.Time    `json:"finished_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
