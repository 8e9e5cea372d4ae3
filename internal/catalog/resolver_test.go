package catalog

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/libraryhub/libraryhub/internal/database/books"
	"github.com/libraryhub/libraryhub/internal/entities"
	"github.com/libraryhub/libraryhub/internal/openlibrary"
)

// fakeGateway returns canned work metadata and counts calls.
type fakeGateway struct {
	works map[string]*openlibrary.WorkMetadata
	err   error
	calls int
}

func (f *fakeGateway) GetWork(_ context.Context, workOLID string) (*openlibrary.WorkMetadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if work, ok := f.works[workOLID]; ok {
		return work, nil
	}
	return nil, openlibrary.ErrNotFound
}

func setupResolver(t *testing.T, gateway *fakeGateway) (*Resolver, func()) {
	dbPath := "./test_catalog_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return NewResolver(books.NewRepository(db), gateway), cleanup
}

func duneGateway() *fakeGateway {
	return &fakeGateway{works: map[string]*openlibrary.WorkMetadata{
		"OL893415W": {
			Title:    "Dune",
			Authors:  []string{"Frank Herbert"},
			CoverURL: "https://covers.openlibrary.org/b/id/111-M.jpg",
			Year:     1965,
		},
	}}
}

func TestResolver_Resolve_FetchesAndCaches(t *testing.T) {
	gateway := duneGateway()
	resolver, cleanup := setupResolver(t, gateway)
	defer cleanup()

	book, err := resolver.Resolve(context.Background(), "OL893415W")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, []string{"Frank Herbert"}, book.AuthorList())
	assert.Equal(t, 1, gateway.calls)

	// Second resolve is served from the cache
	book, err = resolver.Resolve(context.Background(), "OL893415W")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, 1, gateway.calls)
}

func TestResolver_Resolve_UnknownWork(t *testing.T) {
	resolver, cleanup := setupResolver(t, duneGateway())
	defer cleanup()

	book, err := resolver.Resolve(context.Background(), "OL0W")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestResolver_Resolve_GatewayFailureDegrades(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("connection refused")}
	resolver, cleanup := setupResolver(t, gateway)
	defer cleanup()

	book, err := resolver.Resolve(context.Background(), "OL893415W")
	require.NoError(t, err)
	assert.Nil(t, book)

	// Nothing was cached, so a later resolve retries the gateway
	gateway.err = nil
	gateway.works = duneGateway().works
	book, err = resolver.Resolve(context.Background(), "OL893415W")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, "Dune", book.Title)
}

func TestResolver_Exists(t *testing.T) {
	resolver, cleanup := setupResolver(t, duneGateway())
	defer cleanup()

	exists, err := resolver.Exists(context.Background(), "OL893415W")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = resolver.Exists(context.Background(), "OL0W")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResolver_Lookup_CacheOnly(t *testing.T) {
	gateway := duneGateway()
	resolver, cleanup := setupResolver(t, gateway)
	defer cleanup()

	_, err := resolver.Resolve(context.Background(), "OL893415W")
	require.NoError(t, err)

	found, err := resolver.Lookup([]string{"OL893415W", "OL0W"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "Dune", found["OL893415W"].Title)
	// Lookup never hits the gateway, even for misses
	assert.Equal(t, 1, gateway.calls)
}
