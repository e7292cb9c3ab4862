package http_blog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	"github.com/filmnest/core/internal/model"
	usecase_blog "github.com/filmnest/core/internal/usecase/blog"
	"github.com/gin-gonic/gin"
)

// PostResponseDTO is one editorial post
type PostResponseDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Author   string `json:"author"`
	Body     string `json:"body,omitempty"`
}

// PostListResponseDTO groups posts by front-page section
type PostListResponseDTO struct {
	Reviews       []PostResponseDTO `json:"reviews"`
	Announcements []PostResponseDTO `json:"announcements"`
	Interviews    []PostResponseDTO `json:"interviews"`
}

func convertPost(p model.BlogPost) PostResponseDTO {
	return PostResponseDTO{
		ID:       p.ID,
		Title:    p.Title,
		Image:    p.Image,
		Category: string(p.Category),
		Date:     p.Date,
		Author:   p.Author,
		Body:     p.Body,
	}
}

func convertPosts(posts []model.BlogPost) []PostResponseDTO {
	out := make([]PostResponseDTO, len(posts))
	for i, p := range posts {
		out[i] = convertPost(p)
	}
	return out
}

type Controller struct {
	uc     *usecase_blog.Usecase
	logger *slog.Logger
}

func New(uc *usecase_blog.Usecase) *Controller {
	return &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	blog := router.Group("/blog")
	blog.GET("", c.list)
	blog.GET("/:post_id", c.getByID)
}

// @Summary List blog posts grouped by section
// @Tags Blog operations
// @Produce json
// @Success 200 {object} PostListResponseDTO
// @Router /blog [get]
func (c *Controller) list(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, PostListResponseDTO{
		Reviews:       convertPosts(c.uc.ListByCategory(model.BlogReview)),
		Announcements: convertPosts(c.uc.ListByCategory(model.BlogAnnouncement)),
		Interviews:    convertPosts(c.uc.ListByCategory(model.BlogInterview)),
	})
}

// @Summary Get one blog post
// @Tags Blog operations
// @Produce json
// @Param post_id path int true "Post id"
// @Success 200 {object} PostResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad id"
// @Failure 404 {object} http_common.ErrorResponse "Post not found"
// @Router /blog/{post_id} [get]
func (c *Controller) getByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("post_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid post ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	post, err := c.uc.GetByID(id)
	if err != nil {
		if errors.Is(err, usecase_blog.ErrPostNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Error: "Post not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		c.logger.Error("failed to load post", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to load post",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, convertPost(post))
}
