// Package readinglist provides database operations for personal
// reading-list entries (one row per user and work).
package readinglist

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libraryhub/libraryhub/internal/entities"
)

var (
	// ErrNotFound is returned when no entry with the given ID belongs to
	// the user. Ownership mismatches are reported identically to missing
	// rows so entry IDs of other users are not leaked.
	ErrNotFound = errors.New("reading list entry not found")

	// ErrExists is returned when the user already tracks the work.
	ErrExists = errors.New("book is already in the reading list")
)

// Repository handles all reading-list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reading-list repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new entry. Returns ErrExists when the (user, work)
// pair is already present.
func (r *Repository) Create(entry *entities.UserBook) error {
	var existing entities.UserBook
	err := r.db.Where("user_id = ? AND work_olid = ?", entry.UserID, entry.WorkOLID).
		First(&existing).Error
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(entry).Error
}

// GetOwned retrieves an entry by ID scoped to its owning user.
func (r *Repository) GetOwned(id, userID uint) (*entities.UserBook, error) {
	var entry entities.UserBook
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// List returns a page of the user's entries in creation order, optionally
// filtered to a single status.
func (r *Repository) List(userID uint, status entities.ReadingStatus, limit, offset int) ([]entities.UserBook, error) {
	var entries []entities.UserBook

	query := r.db.Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("id").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, err
}

// Update persists changes to an entry.
func (r *Repository) Update(entry *entities.UserBook) error {
	return r.db.Save(entry).Error
}

// DeleteOwned removes an entry by ID scoped to its owning user. Returns
// ErrNotFound when no such entry belongs to the user.
func (r *Repository) DeleteOwned(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.UserBook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
