// Package books provides database operations for the local catalog cache.
//
// Rows map an Open Library work OLID to cached metadata. They are written
// once, on the first successful catalog lookup, and never updated.
package books

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/libraryhub/libraryhub/internal/entities"
)

// ErrNotFound is returned when no cached book exists for a work OLID.
var ErrNotFound = errors.New("book not found")

// Repository handles all book cache database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByWorkOLID retrieves a cached book by its work OLID.
func (r *Repository) GetByWorkOLID(workOLID string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("work_olid = ?", workOLID).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Insert persists a cached book. The insert ignores a conflicting row for
// the same work OLID, so two concurrent first-lookups for one work are a
// benign race: the loser's row is simply discarded.
func (r *Repository) Insert(book *entities.Book) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "work_olid"}},
		DoNothing: true,
	}).Create(book).Error
}

// GetByWorkOLIDs retrieves cached books for a set of work OLIDs, keyed by OLID.
func (r *Repository) GetByWorkOLIDs(workOLIDs []string) (map[string]entities.Book, error) {
	result := make(map[string]entities.Book, len(workOLIDs))
	if len(workOLIDs) == 0 {
		return result, nil
	}

	var found []entities.Book
	if err := r.db.Where("work_olid IN ?", workOLIDs).Find(&found).Error; err != nil {
		return nil, err
	}
	for _, b := range found {
		result[b.WorkOLID] = b
	}
	return result, nil
}
