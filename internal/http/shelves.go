package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/catalog"
	"github.com/libraryhub/libraryhub/internal/database/shelves"
	"github.com/libraryhub/libraryhub/internal/entities"
)

// ShelvesController handles custom bookshelves.
type ShelvesController struct {
	store   *shelves.Repository
	catalog *catalog.Resolver
}

func NewShelvesController(store *shelves.Repository, resolver *catalog.Resolver) *ShelvesController {
	return &ShelvesController{store: store, catalog: resolver}
}

type shelfRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"max=255"`
}

type shelfUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addShelfBookRequest struct {
	WorkOLID string `json:"work_olid" binding:"required"`
}

type shelfBookView struct {
	ID            uint      `json:"id"`
	WorkOLID      string    `json:"work_olid"`
	AddedAt       time.Time `json:"added_at"`
	Title         string    `json:"title,omitempty"`
	Authors       []string  `json:"authors"`
	CoverURL      string    `json:"cover_url,omitempty"`
	PublishedYear int       `json:"published_year,omitempty"`
}

type shelfDetailResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Books       []shelfBookView `json:"books"`
}

// Create makes a new bookshelf for the authenticated user.
// POST /bookshelves
func (sc *ShelvesController) Create(c *gin.Context) {
	var req shelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	shelf := &entities.Bookshelf{
		UserID:      GetUserID(c),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := sc.store.Create(shelf); err != nil {
		if errors.Is(err, shelves.ErrNameTaken) {
			respondBadRequest(c, "bookshelf with this name already exists")
			return
		}
		respondInternalError(c, err, "create bookshelf")
		return
	}
	c.JSON(http.StatusCreated, shelf)
}

// List returns the user's bookshelves without their book entries.
// GET /bookshelves
func (sc *ShelvesController) List(c *gin.Context) {
	all, err := sc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list bookshelves")
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get returns one bookshelf with its books enriched from the catalog.
// GET /bookshelves/:id
func (sc *ShelvesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shelf, err := sc.store.GetOwnedWithBooks(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, shelves.ErrNotFound) {
			respondNotFound(c, "bookshelf")
			return
		}
		respondInternalError(c, err, "get bookshelf")
		return
	}

	books := make([]shelfBookView, 0, len(shelf.Books))
	for _, entry := range shelf.Books {
		view := shelfBookView{
			ID:       entry.ID,
			WorkOLID: entry.WorkOLID,
			AddedAt:  entry.AddedAt,
			Authors:  []string{},
		}
		// Lazily populates the book cache for works added before
		// their metadata was ever fetched.
		book, err := sc.catalog.Resolve(c.Request.Context(), entry.WorkOLID)
		if err != nil {
			respondInternalError(c, err, "resolve book")
			return
		}
		if book != nil {
			view.Title = book.Title
			view.Authors = book.AuthorList()
			view.CoverURL = book.CoverURL
			view.PublishedYear = book.PublishedYear
		}
		books = append(books, view)
	}

	c.JSON(http.StatusOK, shelfDetailResponse{
		ID:          shelf.ID,
		Name:        shelf.Name,
		Description: shelf.Description,
		CreatedAt:   shelf.CreatedAt,
		Books:       books,
	})
}

// Update renames a bookshelf or changes its description.
// PATCH /bookshelves/:id
func (sc *ShelvesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req shelfUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	shelf, err := sc.store.GetOwned(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, shelves.ErrNotFound) {
			respondNotFound(c, "bookshelf")
			return
		}
		respondInternalError(c, err, "get bookshelf")
		return
	}

	if req.Name != nil {
		shelf.Name = *req.Name
	}
	if req.Description != nil {
		shelf.Description = *req.Description
	}

	if err := sc.store.Update(shelf); err != nil {
		respondInternalError(c, err, "update bookshelf")
		return
	}
	c.JSON(http.StatusOK, shelf)
}

// Delete removes a bookshelf and its book entries.
// DELETE /bookshelves/:id
func (sc *ShelvesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := sc.store.GetOwned(id, GetUserID(c)); err != nil {
		if errors.Is(err, shelves.ErrNotFound) {
			respondNotFound(c, "bookshelf")
			return
		}
		respondInternalError(c, err, "get bookshelf")
		return
	}

	if err := sc.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete bookshelf")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddBook places a work on a bookshelf.
// POST /bookshelves/:id/books
func (sc *ShelvesController) AddBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addShelfBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "work_olid is required")
		return
	}

	if _, err := sc.store.GetOwned(id, GetUserID(c)); err != nil {
		if errors.Is(err, shelves.ErrNotFound) {
			respondNotFound(c, "bookshelf")
			return
		}
		respondInternalError(c, err, "get bookshelf")
		return
	}

	entry := &entities.BookInShelf{
		BookshelfID: id,
		WorkOLID:    req.WorkOLID,
	}
	if err := sc.store.AddBook(entry); err != nil {
		if errors.Is(err, shelves.ErrBookInShelf) {
			respondBadRequest(c, "book is already in the bookshelf")
			return
		}
		respondInternalError(c, err, "add book to bookshelf")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// RemoveBook deletes a book entry from a bookshelf.
// DELETE /bookshelves/:id/books/:book_id
func (sc *ShelvesController) RemoveBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entryID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if _, err := sc.store.GetOwned(id, GetUserID(c)); err != nil {
		if errors.Is(err, shelves.ErrNotFound) {
			respondNotFound(c, "bookshelf")
			return
		}
		respondInternalError(c, err, "get bookshelf")
		return
	}

	if err := sc.store.RemoveBook(id, entryID); err != nil {
		if errors.Is(err, shelves.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "remove book from bookshelf")
		return
	}
	c.Status(http.StatusNoContent)
}
