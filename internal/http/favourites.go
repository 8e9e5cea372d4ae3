package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/catalog"
	"github.com/libraryhub/libraryhub/internal/database/favourites"
	"github.com/libraryhub/libraryhub/internal/entities"
)

// FavouritesController handles the user's favourite books.
type FavouritesController struct {
	store   *favourites.Repository
	catalog *catalog.Resolver
}

func NewFavouritesController(store *favourites.Repository, resolver *catalog.Resolver) *FavouritesController {
	return &FavouritesController{store: store, catalog: resolver}
}

type favouriteView struct {
	ID            uint      `json:"id"`
	WorkOLID      string    `json:"work_olid"`
	CreatedAt     time.Time `json:"created_at"`
	Title         string    `json:"title,omitempty"`
	Authors       []string  `json:"authors"`
	CoverURL      string    `json:"cover_url,omitempty"`
	PublishedYear int       `json:"published_year,omitempty"`
}

type favouriteListResponse struct {
	Items    []favouriteView `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Add marks a work as a favourite. The work must exist upstream.
// POST /favorites/:work_olid
func (fc *FavouritesController) Add(c *gin.Context) {
	workOLID := c.Param("work_olid")

	exists, err := fc.catalog.Exists(c.Request.Context(), workOLID)
	if err != nil {
		respondInternalError(c, err, "check work")
		return
	}
	if !exists {
		respondNotFound(c, "book")
		return
	}

	favorite := &entities.Favorite{
		UserID:   GetUserID(c),
		WorkOLID: workOLID,
	}
	if err := fc.store.Create(favorite); err != nil {
		if errors.Is(err, favourites.ErrExists) {
			respondConflict(c, "book already in favorites")
			return
		}
		respondInternalError(c, err, "add favourite")
		return
	}

	book, err := fc.catalog.Resolve(c.Request.Context(), workOLID)
	if err != nil {
		respondInternalError(c, err, "resolve book")
		return
	}
	c.JSON(http.StatusCreated, mergeFavourite(favorite, book))
}

// List returns a page of the user's favourites with the total count.
// GET /favorites
func (fc *FavouritesController) List(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	favorites, total, err := fc.store.List(GetUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}

	olids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		olids = append(olids, f.WorkOLID)
	}
	cached, err := fc.catalog.Lookup(olids)
	if err != nil {
		respondInternalError(c, err, "lookup books")
		return
	}

	items := make([]favouriteView, 0, len(favorites))
	for i := range favorites {
		var book *entities.Book
		if b, ok := cached[favorites[i].WorkOLID]; ok {
			book = &b
		}
		items = append(items, mergeFavourite(&favorites[i], book))
	}

	c.JSON(http.StatusOK, favouriteListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Remove deletes a favourite by work OLID.
// DELETE /favorites/:work_olid
func (fc *FavouritesController) Remove(c *gin.Context) {
	workOLID := c.Param("work_olid")

	if err := fc.store.Delete(GetUserID(c), workOLID); err != nil {
		if errors.Is(err, favourites.ErrNotFound) {
			respondNotFound(c, "favourite")
			return
		}
		respondInternalError(c, err, "remove favourite")
		return
	}
	c.Status(http.StatusNoContent)
}

func mergeFavourite(favorite *entities.Favorite, book *entities.Book) favouriteView {
	view := favouriteView{
		ID:        favorite.ID,
		WorkOLID:  favorite.WorkOLID,
		CreatedAt: favorite.CreatedAt,
		Authors:   []string{},
	}
	if book != nil {
		view.Title = book.Title
		view.Authors = book.AuthorList()
		view.CoverURL = book.CoverURL
		view.PublishedYear = book.PublishedYear
	}
	return view
}
