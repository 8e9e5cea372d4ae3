package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/libraryhub/internal/catalog"
	"github.com/libraryhub/libraryhub/internal/database/reviews"
	"github.com/libraryhub/libraryhub/internal/entities"
)

// ReviewsController handles book reviews.
type ReviewsController struct {
	store   *reviews.Repository
	catalog *catalog.Resolver
}

func NewReviewsController(store *reviews.Repository, resolver *catalog.Resolver) *ReviewsController {
	return &ReviewsController{store: store, catalog: resolver}
}

type reviewRequest struct {
	Rating  float64 `json:"rating" binding:"required"`
	Comment string  `json:"comment"`
}

type reviewUpdateRequest struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

type reviewListResponse struct {
	WorkOLID      string            `json:"work_olid"`
	AverageRating float64           `json:"average_rating"`
	Reviews       []entities.Review `json:"reviews"`
}

func validReviewRating(rating float64) bool {
	return rating >= 1 && rating <= 5
}

// Create adds a review for a catalog work.
// POST /books/:olid/reviews
func (rc *ReviewsController) Create(c *gin.Context) {
	workOLID := c.Param("olid")

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "rating is required")
		return
	}
	if !validReviewRating(req.Rating) {
		respondBadRequest(c, "rating must be between 1 and 5")
		return
	}

	exists, err := rc.catalog.Exists(c.Request.Context(), workOLID)
	if err != nil {
		respondInternalError(c, err, "check work")
		return
	}
	if !exists {
		respondNotFound(c, "book")
		return
	}

	review := &entities.Review{
		UserID:   GetUserID(c),
		WorkOLID: workOLID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := rc.store.Create(review); err != nil {
		if errors.Is(err, reviews.ErrExists) {
			respondBadRequest(c, "you have already reviewed this book")
			return
		}
		respondInternalError(c, err, "create review")
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByWork returns every review of a work with the average rating.
// The work must be known upstream, matching the create path.
// GET /books/:olid/reviews
func (rc *ReviewsController) ListByWork(c *gin.Context) {
	workOLID := c.Param("olid")

	exists, err := rc.catalog.Exists(c.Request.Context(), workOLID)
	if err != nil {
		respondInternalError(c, err, "check work")
		return
	}
	if !exists {
		respondNotFound(c, "book")
		return
	}

	all, avg, err := rc.store.ListByWork(workOLID)
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	if all == nil {
		all = []entities.Review{}
	}

	c.JSON(http.StatusOK, reviewListResponse{
		WorkOLID:      workOLID,
		AverageRating: avg,
		Reviews:       all,
	})
}

// Update changes a review's rating or comment. Only the author may do so,
// and an update that changes nothing is rejected.
// PATCH /reviews/:id
func (rc *ReviewsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req reviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Rating == nil && req.Comment == nil {
		respondBadRequest(c, "nothing to update")
		return
	}
	if req.Rating != nil && !validReviewRating(*req.Rating) {
		respondBadRequest(c, "rating must be between 1 and 5")
		return
	}

	review, err := rc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			respondNotFound(c, "review")
			return
		}
		respondInternalError(c, err, "get review")
		return
	}
	if review.UserID != GetUserID(c) {
		respondForbidden(c, "not your review")
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	now := time.Now()
	review.UpdatedAt = &now

	if err := rc.store.Update(review); err != nil {
		respondInternalError(c, err, "update review")
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review. Only the author may do so.
// DELETE /reviews/:id
func (rc *ReviewsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := rc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			respondNotFound(c, "review")
			return
		}
		respondInternalError(c, err, "get review")
		return
	}
	if review.UserID != GetUserID(c) {
		respondForbidden(c, "not your review")
		return
	}

	if err := rc.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete review")
		return
	}
	c.Status(http.StatusNoContent)
}
