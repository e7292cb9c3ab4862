package http_review

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	http_auth_middleware "github.com/filmnest/core/internal/delivery/http/middleware/auth"
	"github.com/filmnest/core/internal/model"
	usecase_review "github.com/filmnest/core/internal/usecase/review"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmitRequestDTO creates a review for one media record
type SubmitRequestDTO struct {
	Kind    string `json:"kind" binding:"required" example:"tv_show"`
	MediaID int64  `json:"media_id" binding:"required" example:"7"`
	Rating  int    `json:"rating" example:"4"`
	Text    string `json:"text" example:"Gripping from the first episode."`
}

// UpdateRequestDTO rewrites an existing review
type UpdateRequestDTO struct {
	Rating int    `json:"rating" example:"5"`
	Text   string `json:"text" example:"Even better on a rewatch."`
}

// ReviewResponseDTO is one review row
type ReviewResponseDTO struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	MovieID     *int64    `json:"movie_id,omitempty"`
	TVShowID    *int64    `json:"tv_show_id,omitempty"`
	Rating      int       `json:"rating"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	AuthorEmail string    `json:"author_email,omitempty"`
}

// ReviewListResponseDTO is the full list for one media record
type ReviewListResponseDTO struct {
	Reviews []ReviewResponseDTO `json:"reviews"`
	Total   int                 `json:"total"`
}

func convertReview(r model.Review) ReviewResponseDTO {
	return ReviewResponseDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		MovieID:     r.MovieID,
		TVShowID:    r.TVShowID,
		Rating:      r.Rating,
		Text:        r.Text,
		CreatedAt:   r.CreatedAt,
		AuthorEmail: r.AuthorEmail,
	}
}

type Controller struct {
	uc         *usecase_review.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(uc *usecase_review.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		uc:         uc,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	reviews.GET("/:kind/:media_id", c.listForMedia)

	authed := reviews.Group("")
	authed.Use(c.middleware.AuthRequired())
	authed.POST("", c.submit)
	authed.PUT("/:review_id", c.update)
	authed.DELETE("/:review_id", c.remove)
}

// @Summary List reviews for one media record
// @Tags Review operations
// @Produce json
// @Param kind path string true "movie | tv_show"
// @Param media_id path int true "Record id"
// @Success 200 {object} ReviewListResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad path parameter"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /reviews/{kind}/{media_id} [get]
func (c *Controller) listForMedia(ctx *gin.Context) {
	kind, err := model.ParseMediaKind(ctx.Param("kind"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid media kind",
			Code:  http.StatusBadRequest,
		})
		return
	}

	mediaID, err := strconv.ParseInt(ctx.Param("media_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid media ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	reviews, err := c.uc.ListForMedia(ctx.Request.Context(), kind, mediaID)
	if err != nil {
		c.logger.Error("failed to load reviews",
			slog.String("error", err.Error()),
			slog.Int64("media_id", mediaID),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to load reviews",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	out := make([]ReviewResponseDTO, len(reviews))
	for i, r := range reviews {
		out[i] = convertReview(*r)
	}

	ctx.JSON(http.StatusOK, ReviewListResponseDTO{
		Reviews: out,
		Total:   len(out),
	})
}

// @Summary Submit a review
// @Description Validates rating and text locally, then inserts and notifies subscribers
// @Tags Review operations
// @Accept json
// @Produce json
// @Param request body SubmitRequestDTO true "Review payload"
// @Success 201 "Review created"
// @Failure 400 {object} http_common.ErrorResponse "Validation failed"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /reviews [post]
func (c *Controller) submit(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	var req SubmitRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	id, err := c.uc.Submit(ctx.Request.Context(), userID, model.MediaKind(req.Kind), req.MediaID, req.Rating, req.Text)
	if err != nil {
		c.writeError(ctx, err, "Failed to submit review")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Update an own review
// @Tags Review operations
// @Accept json
// @Produce json
// @Param review_id path int true "Review id"
// @Param request body UpdateRequestDTO true "New rating and text"
// @Success 200 "Review updated"
// @Failure 400 {object} http_common.ErrorResponse "Validation failed"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 404 {object} http_common.ErrorResponse "Review not found or not owned"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /reviews/{review_id} [put]
func (c *Controller) update(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	reviewID, err := strconv.ParseInt(ctx.Param("review_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid review ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	var req UpdateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := c.uc.Update(ctx.Request.Context(), userID, reviewID, req.Rating, req.Text); err != nil {
		c.writeError(ctx, err, "Failed to update review")
		return
	}

	ctx.Status(http.StatusOK)
}

// @Summary Delete an own review
// @Tags Review operations
// @Produce json
// @Param review_id path int true "Review id"
// @Success 204 "Review deleted"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 404 {object} http_common.ErrorResponse "Review not found or not owned"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /reviews/{review_id} [delete]
func (c *Controller) remove(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	reviewID, err := strconv.ParseInt(ctx.Param("review_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid review ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := c.uc.Delete(ctx.Request.Context(), userID, reviewID); err != nil {
		c.writeError(ctx, err, "Failed to delete review")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) writeError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase_review.ErrInvalidRating),
		errors.Is(err, usecase_review.ErrEmptyReview),
		errors.Is(err, usecase_review.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, usecase_review.ErrReviewNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Error: "Review not found",
			Code:  http.StatusNotFound,
		})
	case errors.Is(err, usecase_review.ErrNoUser):
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Error: "Please sign in first",
			Code:  http.StatusUnauthorized,
		})
	default:
		c.logger.Error(fallback, slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   fallback,
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}
