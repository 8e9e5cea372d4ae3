// Package catalog resolves work identifiers to book metadata, backed by
// the local cache with lazy population from the Open Library gateway.
package catalog

import (
	"context"
	"errors"
	"log"

	"github.com/libraryhub/libraryhub/internal/database/books"
	"github.com/libraryhub/libraryhub/internal/entities"
	"github.com/libraryhub/libraryhub/internal/openlibrary"
)

// Gateway defines the catalog lookup used to populate the cache.
type Gateway interface {
	GetWork(ctx context.Context, workOLID string) (*openlibrary.WorkMetadata, error)
}

// BookStore defines the cache operations the resolver needs.
type BookStore interface {
	GetByWorkOLID(workOLID string) (*entities.Book, error)
	Insert(book *entities.Book) error
	GetByWorkOLIDs(workOLIDs []string) (map[string]entities.Book, error)
}

// Resolver implements the lookup-or-fetch-or-insert flow for book
// metadata. The cache insert ignores duplicate-key conflicts, so two
// requests racing on the first lookup of a work both succeed.
type Resolver struct {
	store   BookStore
	gateway Gateway
}

// NewResolver creates a resolver over the given cache store and gateway.
func NewResolver(store BookStore, gateway Gateway) *Resolver {
	return &Resolver{store: store, gateway: gateway}
}

// Resolve returns the cached book for a work OLID, fetching and caching
// it on first reference. A catalog miss or gateway failure yields
// (nil, nil): callers render enrichment fields as absent instead of
// failing the surrounding operation.
func (r *Resolver) Resolve(ctx context.Context, workOLID string) (*entities.Book, error) {
	book, err := r.store.GetByWorkOLID(workOLID)
	if err == nil {
		return book, nil
	}
	if !errors.Is(err, books.ErrNotFound) {
		return nil, err
	}

	metadata, err := r.gateway.GetWork(ctx, workOLID)
	if err != nil {
		if !errors.Is(err, openlibrary.ErrNotFound) {
			log.Printf("catalog lookup for %s failed: %v", workOLID, err)
		}
		return nil, nil
	}

	book = &entities.Book{
		WorkOLID:      workOLID,
		Title:         metadata.Title,
		Authors:       entities.JoinAuthors(metadata.Authors),
		CoverURL:      metadata.CoverURL,
		PublishedYear: metadata.Year,
	}
	if err := r.store.Insert(book); err != nil {
		return nil, err
	}

	// Re-read so a lost duplicate-insert race still returns the winner's row.
	book, err = r.store.GetByWorkOLID(workOLID)
	if err != nil {
		return nil, err
	}
	return book, nil
}

// Exists reports whether the work is known, either locally or upstream.
// Used by strict paths (reviews, favourites) that refuse unknown works.
func (r *Resolver) Exists(ctx context.Context, workOLID string) (bool, error) {
	book, err := r.Resolve(ctx, workOLID)
	if err != nil {
		return false, err
	}
	return book != nil, nil
}

// Lookup returns cached books for a set of work OLIDs without consulting
// the gateway. Missing works are simply absent from the map.
func (r *Resolver) Lookup(workOLIDs []string) (map[string]entities.Book, error) {
	return r.store.GetByWorkOLIDs(workOLIDs)
}
