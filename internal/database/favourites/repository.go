// Package favourites provides database operations for favourite books.
package favourites

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libraryhub/libraryhub/internal/entities"
)

var (
	ErrNotFound = errors.New("favourite not found")
	ErrExists   = errors.New("favourite already exists")
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new favourite. Returns ErrExists when the user has
// already favourited the work.
func (r *Repository) Create(favorite *entities.Favorite) error {
	var existing entities.Favorite
	err := r.db.Where("user_id = ? AND work_olid = ?", favorite.UserID, favorite.WorkOLID).
		First(&existing).Error
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(favorite).Error
}

// List returns a page of the user's favourites in creation order together
// with the total count.
func (r *Repository) List(userID uint, limit, offset int) ([]entities.Favorite, int64, error) {
	var total int64
	err := r.db.Model(&entities.Favorite{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var favorites []entities.Favorite
	err = r.db.Where("user_id = ?", userID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	return favorites, total, err
}

// Delete removes a user's favourite by work OLID. Returns ErrNotFound
// when the work is not in the user's favourites.
func (r *Repository) Delete(userID uint, workOLID string) error {
	result := r.db.Where("user_id = ? AND work_olid = ?", userID, workOLID).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
