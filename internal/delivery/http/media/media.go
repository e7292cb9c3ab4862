package http_media

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	"github.com/filmnest/core/internal/model"
	usecase_media "github.com/filmnest/core/internal/usecase/media"
	"github.com/gin-gonic/gin"
)

// MediaResponseDTO is one catalog record
type MediaResponseDTO struct {
	ID          int64    `json:"id" example:"42"`
	Title       string   `json:"title" example:"Interstellar"`
	Image       string   `json:"image" example:"https://example.com/poster.jpg"`
	Genre       string   `json:"genre" example:"Sci-Fi"`
	ReleaseYear int      `json:"release_year" example:"2014"`
	Rating      *float64 `json:"rating,omitempty" example:"8.6"`
	Description *string  `json:"description,omitempty"`
}

// MediaListResponseDTO is the listing payload
type MediaListResponseDTO struct {
	Items []MediaResponseDTO `json:"items"`
	Total int                `json:"total"`
}

func ConvertFromMedia(m model.Media) MediaResponseDTO {
	return MediaResponseDTO{
		ID:          m.ID,
		Title:       m.Title,
		Image:       m.Image,
		Genre:       m.Genre,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		Description: m.Description,
	}
}

func ConvertFromMediaList(media []*model.Media) []MediaResponseDTO {
	items := make([]MediaResponseDTO, len(media))
	for i, m := range media {
		items[i] = ConvertFromMedia(*m)
	}
	return items
}

type Controller struct {
	uc     *usecase_media.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_media.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.GET("", c.list(model.KindMovie))
	movies.GET("/:media_id", c.getByID(model.KindMovie))

	shows := router.Group("/tv-shows")
	shows.GET("", c.list(model.KindTVShow))
	shows.GET("/:media_id", c.getByID(model.KindTVShow))
}

// @Summary List catalog records
// @Description Lists movies or TV shows with optional genre, decade and rating predicates, then applies the in-memory filter/sort stage
// @Tags Media operations
// @Produce json
// @Param genre query string false "Exact genre pushed down to the store" example("Sci-Fi")
// @Param decade query int false "Decade start year, e.g. 2010 selects 2010-2019" example(2010)
// @Param genres query string false "Comma-separated genre set for the in-memory filter (OR semantics)" example("Sci-Fi,Action")
// @Param year_min query int false "Inclusive release-year lower bound"
// @Param year_max query int false "Inclusive release-year upper bound"
// @Param rating_min query number false "Inclusive rating lower bound"
// @Param rating_max query number false "Inclusive rating upper bound"
// @Param sort query string false "rating_desc | rating_asc | title_asc | title_desc"
// @Param limit query int false "Listing bound, default 10"
// @Success 200 {object} MediaListResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad query parameter"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /movies [get]
func (c *Controller) list(kind model.MediaKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		q, cfg, sortKey, err := parseListParams(ctx)
		if err != nil {
			c.logger.Warn("bad listing params", slog.String("error", err.Error()))
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Invalid query parameters",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		media, err := c.uc.List(ctx.Request.Context(), kind, q)
		if err != nil {
			c.logger.Error("failed to list media",
				slog.String("error", err.Error()),
				slog.String("kind", string(kind)),
			)
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to load media",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
			return
		}

		refined := usecase_media.Refine(media, cfg, sortKey)

		ctx.JSON(http.StatusOK, MediaListResponseDTO{
			Items: ConvertFromMediaList(refined),
			Total: len(refined),
		})
	}
}

// @Summary Get one catalog record
// @Tags Media operations
// @Produce json
// @Param media_id path int true "Record id"
// @Success 200 {object} MediaResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad id"
// @Failure 404 {object} http_common.ErrorResponse "Record not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /movies/{media_id} [get]
func (c *Controller) getByID(kind model.MediaKind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := strconv.ParseInt(ctx.Param("media_id"), 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error: "Invalid media ID",
				Code:  http.StatusBadRequest,
			})
			return
		}

		m, err := c.uc.GetByID(ctx.Request.Context(), kind, id)
		if err != nil {
			if errors.Is(err, usecase_media.ErrMediaNotFound) {
				ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
					Error: "Media not found",
					Code:  http.StatusNotFound,
				})
				return
			}
			c.logger.Error("failed to load media",
				slog.String("error", err.Error()),
				slog.Int64("media_id", id),
			)
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to load media",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
			return
		}

		ctx.JSON(http.StatusOK, ConvertFromMedia(m))
	}
}

func parseListParams(ctx *gin.Context) (usecase_media.ListQuery, usecase_media.FilterConfig, usecase_media.SortKey, error) {
	q := usecase_media.ListQuery{Genre: ctx.Query("genre")}
	cfg := usecase_media.DefaultFilterConfig()
	sortKey := usecase_media.SortTitleAsc

	var err error
	if s := ctx.Query("decade"); s != "" {
		if q.DecadeStart, err = strconv.Atoi(s); err != nil {
			return q, cfg, sortKey, err
		}
	}
	if s := ctx.Query("limit"); s != "" {
		if q.Limit, err = strconv.Atoi(s); err != nil {
			return q, cfg, sortKey, err
		}
	}
	if s := ctx.Query("rating_min"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, cfg, sortKey, err
		}
		q.RatingMin = &v
		cfg.RatingMin = v
	}
	if s := ctx.Query("rating_max"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, cfg, sortKey, err
		}
		q.RatingMax = &v
		cfg.RatingMax = v
	}
	if s := ctx.Query("genres"); s != "" {
		for _, g := range strings.Split(s, ",") {
			if g = strings.TrimSpace(g); g != "" {
				cfg.Genres = append(cfg.Genres, g)
			}
		}
	}
	if s := ctx.Query("year_min"); s != "" {
		if cfg.YearMin, err = strconv.Atoi(s); err != nil {
			return q, cfg, sortKey, err
		}
	}
	if s := ctx.Query("year_max"); s != "" {
		if cfg.YearMax, err = strconv.Atoi(s); err != nil {
			return q, cfg, sortKey, err
		}
	}
	if s := ctx.Query("sort"); s != "" {
		key, ok := usecase_media.ParseSortKey(s)
		if !ok {
			return q, cfg, sortKey, errors.New("unknown sort key")
		}
		sortKey = key
	}

	return q, cfg, sortKey, nil
}
