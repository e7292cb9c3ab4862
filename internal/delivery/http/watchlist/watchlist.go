package http_watchlist

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	http_media "github.com/filmnest/core/internal/delivery/http/media"
	http_auth_middleware "github.com/filmnest/core/internal/delivery/http/middleware/auth"
	"github.com/filmnest/core/internal/model"
	usecase_watchlist "github.com/filmnest/core/internal/usecase/watchlist"
	"github.com/gin-gonic/gin"
)

// AddRequestDTO asks for one media record to be saved for later
type AddRequestDTO struct {
	Kind    string `json:"kind" binding:"required" example:"movie"`
	MediaID int64  `json:"media_id" binding:"required" example:"42"`
}

// EntryResponseDTO is one watchlist row joined with its catalog record
type EntryResponseDTO struct {
	ID       int64                        `json:"id"`
	MovieID  *int64                       `json:"movie_id,omitempty"`
	TVShowID *int64                       `json:"tv_show_id,omitempty"`
	Media    *http_media.MediaResponseDTO `json:"media,omitempty"`
}

// WatchlistResponseDTO is the user's full list
type WatchlistResponseDTO struct {
	Entries []EntryResponseDTO `json:"entries"`
	Total   int                `json:"total"`
}

func convertEntry(e model.WatchlistEntry) EntryResponseDTO {
	out := EntryResponseDTO{
		ID:       e.ID,
		MovieID:  e.MovieID,
		TVShowID: e.TVShowID,
	}
	if e.Media != nil {
		dto := http_media.ConvertFromMedia(*e.Media)
		out.Media = &dto
	}
	return out
}

type Controller struct {
	uc         *usecase_watchlist.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(uc *usecase_watchlist.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		uc:         uc,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	watchlist := router.Group("/watchlist")
	watchlist.Use(c.middleware.AuthRequired())
	watchlist.GET("", c.list)
	watchlist.POST("", c.add)
	watchlist.DELETE("/:entry_id", c.remove)
}

// @Summary Add a media record to the watchlist
// @Description Inserts a watchlist entry unless one already exists for the same record
// @Tags Watchlist operations
// @Accept json
// @Produce json
// @Param request body AddRequestDTO true "Record to save"
// @Success 201 "Entry created"
// @Failure 400 {object} http_common.ErrorResponse "Bad request body"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 409 {object} http_common.ErrorResponse "Already in watchlist"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /watchlist [post]
func (c *Controller) add(ctx *gin.Context) {
	userID, ok := http_auth_middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Error: "Please sign in to add to your watchlist",
			Code:  http.StatusUnauthorized,
		})
		return
	}

	var req AddRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	id, err := c.uc.Add(ctx.Request.Context(), userID, model.MediaKind(req.Kind), req.MediaID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_watchlist.ErrAlreadyInWatchlist):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Error: "Already in your watchlist",
				Code:  http.StatusConflict,
			})
		case errors.Is(err, usecase_watchlist.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Invalid request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		default:
			c.logger.Error("failed to add to watchlist",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()),
			)
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to add to watchlist",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary Remove a watchlist entry
// @Tags Watchlist operations
// @Produce json
// @Param entry_id path int true "Entry id"
// @Success 204 "Entry removed"
// @Failure 400 {object} http_common.ErrorResponse "Bad id"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 404 {object} http_common.ErrorResponse "Entry not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /watchlist/{entry_id} [delete]
func (c *Controller) remove(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	entryID, err := strconv.ParseInt(ctx.Param("entry_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid entry ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := c.uc.Remove(ctx.Request.Context(), entryID, userID); err != nil {
		if errors.Is(err, usecase_watchlist.ErrEntryNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error: "Watchlist entry not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		c.logger.Error("failed to remove from watchlist",
			slog.String("error", err.Error()),
			slog.Int64("entry_id", entryID),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to remove from watchlist",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary List the user's watchlist
// @Tags Watchlist operations
// @Produce json
// @Param sort query string false "title | release_year" default(title)
// @Success 200 {object} WatchlistResponseDTO
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /watchlist [get]
func (c *Controller) list(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	sortBy := usecase_watchlist.SortByTitle
	if ctx.Query("sort") == string(usecase_watchlist.SortByReleaseYear) {
		sortBy = usecase_watchlist.SortByReleaseYear
	}

	entries, err := c.uc.ListForUser(ctx.Request.Context(), userID, sortBy)
	if err != nil {
		c.logger.Error("failed to load watchlist",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to load watchlist",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	out := make([]EntryResponseDTO, len(entries))
	for i, e := range entries {
		out[i] = convertEntry(*e)
	}

	ctx.JSON(http.StatusOK, WatchlistResponseDTO{
		Entries: out,
		Total:   len(out),
	})
}
