// Package shelves provides database operations for custom bookshelves
// and the books placed on them.
package shelves

import (
	"errors"

	"gorm.io/gorm"

	"github.com/libraryhub/libraryhub/internal/entities"
)

var (
	ErrNotFound     = errors.New("bookshelf not found")
	ErrNameTaken    = errors.New("bookshelf with this name already exists")
	ErrBookInShelf  = errors.New("book is already in the bookshelf")
	ErrBookNotFound = errors.New("book not found in this bookshelf")
)

// Repository handles all bookshelf database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shelves repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new bookshelf. Returns ErrNameTaken when the user
// already has a shelf with that name.
func (r *Repository) Create(shelf *entities.Bookshelf) error {
	var existing entities.Bookshelf
	err := r.db.Where("user_id = ? AND name = ?", shelf.UserID, shelf.Name).
		First(&existing).Error
	if err == nil {
		return ErrNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(shelf).Error
}

// GetOwned retrieves a shelf by ID scoped to its owning user.
func (r *Repository) GetOwned(id, userID uint) (*entities.Bookshelf, error) {
	var shelf entities.Bookshelf
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&shelf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shelf, nil
}

// GetOwnedWithBooks retrieves a shelf and its book entries.
func (r *Repository) GetOwnedWithBooks(id, userID uint) (*entities.Bookshelf, error) {
	var shelf entities.Bookshelf
	err := r.db.Preload("Books").Where("id = ? AND user_id = ?", id, userID).First(&shelf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &shelf, nil
}

// ListByUser returns all of the user's shelves.
func (r *Repository) ListByUser(userID uint) ([]entities.Bookshelf, error) {
	var shelvesList []entities.Bookshelf
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&shelvesList).Error
	return shelvesList, err
}

// Update persists changes to a shelf.
func (r *Repository) Update(shelf *entities.Bookshelf) error {
	return r.db.Save(shelf).Error
}

// Delete removes a shelf and all of its book entries.
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bookshelf_id = ?", id).Delete(&entities.BookInShelf{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Bookshelf{}, id).Error
	})
}

// AddBook places a work on a shelf. Returns ErrBookInShelf when the work
// is already on it.
func (r *Repository) AddBook(entry *entities.BookInShelf) error {
	var existing entities.BookInShelf
	err := r.db.Where("bookshelf_id = ? AND work_olid = ?", entry.BookshelfID, entry.WorkOLID).
		First(&existing).Error
	if err == nil {
		return ErrBookInShelf
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(entry).Error
}

// RemoveBook deletes a book entry from a shelf by its entry ID.
func (r *Repository) RemoveBook(shelfID, entryID uint) error {
	result := r.db.Where("id = ? AND bookshelf_id = ?", entryID, shelfID).
		Delete(&entities.BookInShelf{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
