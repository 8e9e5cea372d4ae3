// Command generate_demo creates a demo database populated with a demo
// account and a small library of public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/libraryhub/libraryhub/internal/auth"
	"github.com/libraryhub/libraryhub/internal/database"
	"github.com/libraryhub/libraryhub/internal/database/books"
	"github.com/libraryhub/libraryhub/internal/database/favourites"
	readinglistdb "github.com/libraryhub/libraryhub/internal/database/readinglist"
	"github.com/libraryhub/libraryhub/internal/database/reviews"
	"github.com/libraryhub/libraryhub/internal/database/shelves"
	"github.com/libraryhub/libraryhub/internal/database/users"
	"github.com/libraryhub/libraryhub/internal/entities"
)

const (
	defaultDemoDatabasePath = "./demo/demo.db"
	demoEmail               = "demo@libraryhub.local"
	demoPassword            = "demo-password"
	demoBcryptCost          = 10
)

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	user := createDemoUser(db)
	seedBooks(db)
	seedReadingList(db, user.ID)
	seedReviews(db, user.ID)
	seedFavourites(db, user.ID)
	seedShelves(db, user.ID)

	log.Printf("Demo database generated successfully at %s", *dbPath)
	log.Printf("Log in with %s / %s", demoEmail, demoPassword)
}

func createDemoUser(db *database.Database) *entities.User {
	hash, err := auth.HashPassword(demoPassword, demoBcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := &entities.User{
		Email:        demoEmail,
		Username:     "demo",
		PasswordHash: hash,
		Role:         entities.UserRoleUser,
		IsActive:     true,
	}
	if err := users.NewRepository(db.DB).Create(user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %s", user.Email)
	return user
}

// demoBooks are public domain works with real Open Library identifiers,
// pre-cached so the demo works without hitting the Open Library API.
var demoBooks = []entities.Book{
	{
		WorkOLID:      "OL138052W",
		Title:         "Pride and Prejudice",
		Authors:       "Jane Austen",
		CoverURL:      "https://covers.openlibrary.org/b/id/14348537-L.jpg",
		PublishedYear: 1813,
	},
	{
		WorkOLID:      "OL52267W",
		Title:         "Moby Dick",
		Authors:       "Herman Melville",
		CoverURL:      "https://covers.openlibrary.org/b/id/7222246-L.jpg",
		PublishedYear: 1851,
	},
	{
		WorkOLID:      "OL1100007W",
		Title:         "War and Peace",
		Authors:       "Leo Tolstoy",
		CoverURL:      "https://covers.openlibrary.org/b/id/7193642-L.jpg",
		PublishedYear: 1869,
	},
	{
		WorkOLID:      "OL262460W",
		Title:         "The Adventures of Sherlock Holmes",
		Authors:       "Arthur Conan Doyle",
		CoverURL:      "https://covers.openlibrary.org/b/id/8234450-L.jpg",
		PublishedYear: 1892,
	},
	{
		WorkOLID:      "OL14873315W",
		Title:         "The Picture of Dorian Gray",
		Authors:       "Oscar Wilde",
		CoverURL:      "https://covers.openlibrary.org/b/id/14314591-L.jpg",
		PublishedYear: 1890,
	},
}

func seedBooks(db *database.Database) {
	repo := books.NewRepository(db.DB)
	for i := range demoBooks {
		if err := repo.Insert(&demoBooks[i]); err != nil {
			log.Printf("Failed to cache book %s: %v", demoBooks[i].Title, err)
			continue
		}
		log.Printf("Cached: %s by %s", demoBooks[i].Title, demoBooks[i].Authors)
	}
}

func seedReadingList(db *database.Database, userID uint) {
	repo := readinglistdb.NewRepository(db.DB)
	now := time.Now()
	monthAgo := now.AddDate(0, -1, 0)
	weekAgo := now.AddDate(0, 0, -7)
	rating := 5

	entries := []entities.UserBook{
		{
			UserID:          userID,
			WorkOLID:        "OL138052W",
			Status:          entities.StatusCompleted,
			ProgressPercent: 100,
			Rating:          &rating,
			StartedAt:       &monthAgo,
			FinishedAt:      &weekAgo,
		},
		{
			UserID:          userID,
			WorkOLID:        "OL52267W",
			Status:          entities.StatusReading,
			ProgressPercent: 42,
			StartedAt:       &weekAgo,
		},
		{
			UserID:   userID,
			WorkOLID: "OL1100007W",
			Status:   entities.StatusPlanned,
		},
		{
			UserID:          userID,
			WorkOLID:        "OL14873315W",
			Status:          entities.StatusDropped,
			ProgressPercent: 15,
			StartedAt:       &monthAgo,
		},
	}
	for i := range entries {
		if err := repo.Create(&entries[i]); err != nil {
			log.Printf("Failed to create reading-list entry for %s: %v", entries[i].WorkOLID, err)
			continue
		}
		log.Printf("Reading list: %s (%s)", entries[i].WorkOLID, entries[i].Status)
	}
}

func seedReviews(db *database.Database, userID uint) {
	repo := reviews.NewRepository(db.DB)
	review := &entities.Review{
		UserID:   userID,
		WorkOLID: "OL138052W",
		Rating:   5,
		Comment:  "A truth universally acknowledged: still worth rereading.",
	}
	if err := repo.Create(review); err != nil {
		log.Printf("Failed to create review: %v", err)
		return
	}
	log.Printf("Reviewed %s", review.WorkOLID)
}

func seedFavourites(db *database.Database, userID uint) {
	repo := favourites.NewRepository(db.DB)
	for _, olid := range []string{"OL138052W", "OL262460W"} {
		if err := repo.Create(&entities.Favorite{UserID: userID, WorkOLID: olid}); err != nil {
			log.Printf("Failed to favorite %s: %v", olid, err)
			continue
		}
		log.Printf("Favorited %s", olid)
	}
}

func seedShelves(db *database.Database, userID uint) {
	repo := shelves.NewRepository(db.DB)
	shelf := &entities.Bookshelf{
		UserID:      userID,
		Name:        "Classics",
		Description: "Public domain favourites",
	}
	if err := repo.Create(shelf); err != nil {
		log.Printf("Failed to create shelf: %v", err)
		return
	}
	for _, olid := range []string{"OL138052W", "OL52267W", "OL1100007W"} {
		if err := repo.AddBook(&entities.BookInShelf{BookshelfID: shelf.ID, WorkOLID: olid}); err != nil {
			log.Printf("Failed to add %s to shelf: %v", olid, err)
		}
	}
	log.Printf("Created shelf %q with 3 books", shelf.Name)
}
