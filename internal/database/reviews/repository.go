// Package reviews provides database operations for book reviews.
package reviews

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libraryhub/libraryhub/internal/entities"
)

var (
	ErrNotFound = errors.New("review not found")
	ErrExists   = errors.New("review already exists")
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new review. Returns ErrExists when the user has
// already reviewed the work.
func (r *Repository) Create(review *entities.Review) error {
	var existing entities.Review
	err := r.db.Where("user_id = ? AND work_olid = ?", review.UserID, review.WorkOLID).
		First(&existing).Error
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(review).Error
}

// GetByID retrieves a review by ID.
func (r *Repository) GetByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// ListByWork returns all reviews for a work together with the average rating.
// The average is zero when no reviews exist.
func (r *Repository) ListByWork(workOLID string) ([]entities.Review, float64, error) {
	var reviews []entities.Review
	err := r.db.Where("work_olid = ?", workOLID).Order("id").Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	if len(reviews) == 0 {
		return reviews, 0, nil
	}

	var avg float64
	err = r.db.Model(&entities.Review{}).
		Where("work_olid = ?", workOLID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, avg, nil
}

// Update persists changes to a review.
func (r *Repository) Update(review *entities.Review) error {
	return r.db.Save(review).Error
}

// Delete removes a review by ID.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
