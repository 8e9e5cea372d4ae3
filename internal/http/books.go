package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/cache"
	"github.com/libraryhub/libraryhub/internal/openlibrary"
)

// BookGateway is the slice of the Open Library client the book endpoints
// need.
type BookGateway interface {
	Search(ctx context.Context, query string, offset, limit int) (*openlibrary.SearchResult, error)
	GetEdition(ctx context.Context, editionOLID string) (*openlibrary.EditionDetail, error)
}

// BooksController proxies book search and edition lookups to Open Library.
type BooksController struct {
	gateway BookGateway
	cache   *cache.SearchCache // nil when caching is disabled
}

func NewBooksController(gateway BookGateway, searchCache *cache.SearchCache) *BooksController {
	return &BooksController{gateway: gateway, cache: searchCache}
}

type searchResponse struct {
	Total    int                     `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
	Docs     []openlibrary.SearchDoc `json:"docs"`
}

// Search looks up books by any combination of title, author, year,
// subject, isbn, and publisher filters.
// GET /books/search
func (bc *BooksController) Search(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	var parts []string
	if title := strings.TrimSpace(c.Query("title")); title != "" {
		parts = append(parts, fmt.Sprintf("title:%q", title))
	}
	if author := strings.TrimSpace(c.Query("author")); author != "" {
		parts = append(parts, fmt.Sprintf("author:%q", author))
	}
	if yearStr := strings.TrimSpace(c.Query("year")); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			respondBadRequest(c, "year must be an integer")
			return
		}
		parts = append(parts, fmt.Sprintf("first_publish_year:%d", year))
	}
	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		parts = append(parts, fmt.Sprintf("subject:%q", subject))
	}
	if isbn := strings.TrimSpace(c.Query("isbn")); isbn != "" {
		parts = append(parts, "isbn:"+isbn)
	}
	if publisher := strings.TrimSpace(c.Query("publisher")); publisher != "" {
		parts = append(parts, fmt.Sprintf("publisher:%q", publisher))
	}

	// No filters means an empty page, not an upstream call.
	if len(parts) == 0 {
		c.JSON(http.StatusOK, searchResponse{
			Page:     page,
			PageSize: pageSize,
			Docs:     []openlibrary.SearchDoc{},
		})
		return
	}

	query := strings.Join(parts, " AND ")

	cacheKey := cache.Key(query, page, pageSize)
	if bc.cache != nil {
		if payload, hit := bc.cache.Get(c.Request.Context(), cacheKey); hit {
			c.Data(http.StatusOK, "application/json", payload)
			return
		}
	}

	result, err := bc.gateway.Search(c.Request.Context(), query, (page-1)*pageSize, pageSize)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	resp := searchResponse{
		Total:    result.NumFound,
		Page:     page,
		PageSize: pageSize,
		Docs:     result.Docs,
	}
	if resp.Docs == nil {
		resp.Docs = []openlibrary.SearchDoc{}
	}

	if bc.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			bc.cache.Set(c.Request.Context(), cacheKey, payload)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetEdition returns the detail of a single edition.
// GET /books/:olid
func (bc *BooksController) GetEdition(c *gin.Context) {
	editionOLID := c.Param("olid")

	detail, err := bc.gateway.GetEdition(c.Request.Context(), editionOLID)
	if err != nil {
		if errors.Is(err, openlibrary.ErrNotFound) {
			respondNotFound(c, "edition")
			return
		}
		respondInternalError(c, err, "get edition")
		return
	}
	c.JSON(http.StatusOK, detail)
}
