package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	readinglistdb "github.com/libraryhub/libraryhub/internal/database/readinglist"
	"github.com/libraryhub/libraryhub/internal/entities"
	"github.com/libraryhub/libraryhub/internal/readinglist"
)

// ReadingListController exposes the per-user reading list.
type ReadingListController struct {
	service *readinglist.Service
}

func NewReadingListController(service *readinglist.Service) *ReadingListController {
	return &ReadingListController{service: service}
}

type addEntryRequest struct {
	WorkOLID        string                 `json:"work_olid" binding:"required"`
	Status          entities.ReadingStatus `json:"status"`
	ProgressPercent int                    `json:"progress_percent"`
	Rating          *int                   `json:"rating"`
}

type updateEntryRequest struct {
	Status          *entities.ReadingStatus `json:"status"`
	ProgressPercent *int                    `json:"progress_percent"`
	Rating          *int                    `json:"rating"`
}

// Add creates a reading-list entry for the authenticated user.
// POST /user-books
func (rc *ReadingListController) Add(c *gin.Context) {
	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "work_olid is required")
		return
	}

	entry, err := rc.service.Add(c.Request.Context(), GetUserID(c), readinglist.AddParams{
		WorkOLID:        req.WorkOLID,
		Status:          req.Status,
		ProgressPercent: req.ProgressPercent,
		Rating:          req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, readinglistdb.ErrExists):
			respondConflict(c, "book already in reading list")
		case errors.Is(err, readinglist.ErrInvalidStatus),
			errors.Is(err, readinglist.ErrInvalidProgress),
			errors.Is(err, readinglist.ErrInvalidRating):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "add reading-list entry")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List returns a page of the user's reading list, optionally filtered by
// status.
// GET /user-books
func (rc *ReadingListController) List(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	status := entities.ReadingStatus(c.Query("status"))

	entries, err := rc.service.List(GetUserID(c), status, page, pageSize)
	if err != nil {
		if errors.Is(err, readinglist.ErrInvalidStatus) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "list reading-list entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":     entries,
		"page":      page,
		"page_size": pageSize,
	})
}

// Update partially updates an entry the user owns.
// PATCH /user-books/:id
func (rc *ReadingListController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	entry, err := rc.service.Update(c.Request.Context(), id, GetUserID(c), readinglist.UpdateParams{
		Status:          req.Status,
		ProgressPercent: req.ProgressPercent,
		Rating:          req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, readinglistdb.ErrNotFound):
			respondNotFound(c, "reading-list entry")
		case errors.Is(err, readinglist.ErrInvalidStatus),
			errors.Is(err, readinglist.ErrInvalidProgress),
			errors.Is(err, readinglist.ErrInvalidRating):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "update reading-list entry")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes an entry the user owns.
// DELETE /user-books/:id
func (rc *ReadingListController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.service.Delete(id, GetUserID(c)); err != nil {
		if errors.Is(err, readinglistdb.ErrNotFound) {
			respondNotFound(c, "reading-list entry")
			return
		}
		respondInternalError(c, err, "delete reading-list entry")
		return
	}
	c.Status(http.StatusNoContent)
}
