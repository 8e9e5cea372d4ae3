// Package readinglist implements the personal reading-list workflow:
// adding works, status/progress transitions, and catalog enrichment.
package readinglist

import (
	"context"
	"errors"
	"time"

	"github.com/libraryhub/libraryhub/internal/entities"
)

var (
	ErrInvalidStatus   = errors.New("invalid reading status")
	ErrInvalidProgress = errors.New("progress_percent must be between 0 and 100")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// EntryStore defines the database operations for reading-list entries.
type EntryStore interface {
	Create(entry *entities.UserBook) error
	GetOwned(id, userID uint) (*entities.UserBook, error)
	List(userID uint, status entities.ReadingStatus, limit, offset int) ([]entities.UserBook, error)
	Update(entry *entities.UserBook) error
	DeleteOwned(id, userID uint) error
}

// BookResolver resolves work identifiers to cached book metadata.
type BookResolver interface {
	Resolve(ctx context.Context, workOLID string) (*entities.Book, error)
	Lookup(workOLIDs []string) (map[string]entities.Book, error)
}

// Entry is the merged view of a reading-list entry and its book
// enrichment fields. Enrichment is empty when no cached book exists.
type Entry struct {
	ID              uint                   `json:"id"`
	WorkOLID        string                 `json:"work_olid"`
	Status          entities.ReadingStatus `json:"status"`
	ProgressPercent int                    `json:"progress_percent"`
	Rating          *int                   `json:"rating"`
	StartedAt       *time.Time             `json:"started_at"`
	FinishedAt      *time.Time             `json:"finished_at"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Title           string                 `json:"title,omitempty"`
	Authors         []string               `json:"authors"`
	CoverURL        string                 `json:"cover_url,omitempty"`
	PublishedYear   int                    `json:"published_year,omitempty"`
}

// AddParams are the inputs for adding a work to the reading list.
type AddParams struct {
	WorkOLID        string
	Status          entities.ReadingStatus // defaults to planned
	ProgressPercent int
	Rating          *int
}

// UpdateParams is a partial update of an entry. Nil fields are untouched.
type UpdateParams struct {
	Status          *entities.ReadingStatus
	ProgressPercent *int
	Rating          *int
}

// IsEmpty reports whether the update carries no recognized field.
func (p UpdateParams) IsEmpty() bool {
	return p.Status == nil && p.ProgressPercent == nil && p.Rating == nil
}

// Service orchestrates reading-list operations against the entry store
// and the catalog resolver.
type Service struct {
	entries  EntryStore
	resolver BookResolver
	now      func() time.Time
}

// NewService creates a reading-list service.
func NewService(entries EntryStore, resolver BookResolver) *Service {
	return &Service{
		entries:  entries,
		resolver: resolver,
		now:      time.Now,
	}
}

// Add creates a reading-list entry for the user, enriching it from the
// catalog. The book lookup tolerates catalog misses: the entry is created
// either way and enrichment fields stay empty.
func (s *Service) Add(ctx context.Context, userID uint, params AddParams) (*Entry, error) {
	if params.Status == "" {
		params.Status = entities.StatusPlanned
	}
	if !entities.ValidReadingStatus(params.Status) {
		return nil, ErrInvalidStatus
	}
	if params.ProgressPercent < 0 || params.ProgressPercent > 100 {
		return nil, ErrInvalidProgress
	}
	if err := validateRating(params.Rating); err != nil {
		return nil, err
	}

	book, err := s.resolver.Resolve(ctx, params.WorkOLID)
	if err != nil {
		return nil, err
	}

	entry := &entities.UserBook{
		UserID:          userID,
		WorkOLID:        params.WorkOLID,
		Status:          params.Status,
		ProgressPercent: params.ProgressPercent,
		Rating:          params.Rating,
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}

	return mergeEntry(entry, book), nil
}

// List returns a page of the user's entries in creation order, joined
// with cached book metadata.
func (s *Service) List(userID uint, status entities.ReadingStatus, page, pageSize int) ([]Entry, error) {
	if status != "" && !entities.ValidReadingStatus(status) {
		return nil, ErrInvalidStatus
	}

	offset := (page - 1) * pageSize
	userBooks, err := s.entries.List(userID, status, pageSize, offset)
	if err != nil {
		return nil, err
	}

	olids := make([]string, 0, len(userBooks))
	for _, ub := range userBooks {
		olids = append(olids, ub.WorkOLID)
	}
	cached, err := s.resolver.Lookup(olids)
	if err != nil {
		return nil, err
	}

	result := make([]Entry, 0, len(userBooks))
	for i := range userBooks {
		var book *entities.Book
		if b, ok := cached[userBooks[i].WorkOLID]; ok {
			book = &b
		}
		result = append(result, *mergeEntry(&userBooks[i], book))
	}
	return result, nil
}

// Update applies a partial update to an entry the user owns.
//
// Status-driven effects apply first: setting reading records started_at
// once, setting completed records finished_at and forces progress to 100.
// Progress-driven effects apply second and win on conflict: progress 100
// forces completed even when the same request supplied another status.
// An empty update is a no-op that still refreshes updated_at.
func (s *Service) Update(ctx context.Context, id, userID uint, params UpdateParams) (*Entry, error) {
	if params.Status != nil && !entities.ValidReadingStatus(*params.Status) {
		return nil, ErrInvalidStatus
	}
	if params.ProgressPercent != nil && (*params.ProgressPercent < 0 || *params.ProgressPercent > 100) {
		return nil, ErrInvalidProgress
	}
	if err := validateRating(params.Rating); err != nil {
		return nil, err
	}

	entry, err := s.entries.GetOwned(id, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if params.Status != nil {
		entry.Status = *params.Status
		switch *params.Status {
		case entities.StatusReading:
			if entry.StartedAt == nil {
				entry.StartedAt = &now
			}
		case entities.StatusCompleted:
			entry.FinishedAt = &now
			entry.ProgressPercent = 100
		}
	}

	if params.ProgressPercent != nil {
		entry.ProgressPercent = *params.ProgressPercent
		if *params.ProgressPercent == 100 {
			entry.Status = entities.StatusCompleted
			entry.FinishedAt = &now
		}
	}

	if params.Rating != nil {
		entry.Rating = params.Rating
	}

	if err := s.entries.Update(entry); err != nil {
		return nil, err
	}

	book, err := s.resolver.Resolve(ctx, entry.WorkOLID)
	if err != nil {
		return nil, err
	}
	return mergeEntry(entry, book), nil
}

// Delete removes an entry the user owns. The cached book is untouched.
func (s *Service) Delete(id, userID uint) error {
	return s.entries.DeleteOwned(id, userID)
}

func validateRating(rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return ErrInvalidRating
	}
	return nil
}

func mergeEntry(entry *entities.UserBook, book *entities.Book) *Entry {
	merged := &Entry{
		ID:              entry.ID,
		WorkOLID:        entry.WorkOLID,
		Status:          entry.Status,
		ProgressPercent: entry.ProgressPercent,
		Rating:          entry.Rating,
		StartedAt:       entry.StartedAt,
		FinishedAt:      entry.FinishedAt,
		CreatedAt:       entry.CreatedAt,
		UpdatedAt:       entry.UpdatedAt,
		Authors:         []string{},
	}
	if book != nil {
		merged.Title = book.Title
		merged.Authors = book.AuthorList()
		merged.CoverURL = book.CoverURL
		merged.PublishedYear = book.PublishedYear
	}
	return merged
}
