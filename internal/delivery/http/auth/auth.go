package http_auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	http_auth_middleware "github.com/filmnest/core/internal/delivery/http/middleware/auth"
	"github.com/filmnest/core/internal/model"
	usecase_account "github.com/filmnest/core/internal/usecase/account"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SignUpRequestDTO registers a new account
type SignUpRequestDTO struct {
	Email           string `json:"email" binding:"required" example:"user@example.com"`
	Password        string `json:"password" binding:"required" example:"hunter22"`
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"hunter22"`
}

// SignInRequestDTO authenticates an existing account
type SignInRequestDTO struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"hunter22"`
}

// UpdatePasswordRequestDTO changes the account password
type UpdatePasswordRequestDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UserResponseDTO is the public account shape
type UserResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SignInResponseDTO carries the session token and the account
type SignInResponseDTO struct {
	Token string          `json:"token"`
	User  UserResponseDTO `json:"user"`
}

func convertUser(u model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type Controller struct {
	uc         *usecase_account.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(uc *usecase_account.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		uc:         uc,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/signup", c.signUp)
	auth.POST("/login", c.signIn)

	authed := auth.Group("")
	authed.Use(c.middleware.AuthRequired())
	authed.POST("/logout", c.signOut)
	authed.GET("/me", c.me)
	authed.PUT("/password", c.updatePassword)
	authed.DELETE("/account", c.deleteAccount)
}

// @Summary Register an account
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body SignUpRequestDTO true "Registration payload"
// @Success 201 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Validation failed"
// @Failure 409 {object} http_common.ErrorResponse "Email already registered"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/signup [post]
func (c *Controller) signUp(ctx *gin.Context) {
	var req SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user, err := c.uc.SignUp(ctx.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase_account.ErrPasswordMismatch),
			errors.Is(err, usecase_account.ErrPasswordTooShort),
			errors.Is(err, usecase_account.ErrInvalidEmail):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		case errors.Is(err, usecase_account.ErrEmailTaken):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Error: "Email already registered",
				Code:  http.StatusConflict,
			})
		default:
			c.logger.Error("failed to sign up", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to sign up",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, convertUser(user))
}

// @Summary Sign in
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body SignInRequestDTO true "Credentials"
// @Success 200 {object} SignInResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Bad request body"
// @Failure 401 {object} http_common.ErrorResponse "Invalid credentials"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/login [post]
func (c *Controller) signIn(ctx *gin.Context) {
	var req SignInRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	user, token, err := c.uc.SignIn(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase_account.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Invalid email or password",
				Code:  http.StatusUnauthorized,
			})
			return
		}
		c.logger.Error("failed to sign in", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to sign in",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, SignInResponseDTO{
		Token: token,
		User:  convertUser(user),
	})
}

// @Summary Sign out
// @Tags Auth operations
// @Produce json
// @Success 204 "Session revoked"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/logout [post]
func (c *Controller) signOut(ctx *gin.Context) {
	token := http_auth_middleware.CurrentToken(ctx)

	if err := c.uc.SignOut(ctx.Request.Context(), token); err != nil {
		c.logger.Error("failed to sign out", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to sign out",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// @Summary Current account
// @Tags Auth operations
// @Produce json
// @Success 200 {object} UserResponseDTO
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/me [get]
func (c *Controller) me(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	user, err := c.uc.Get(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase_account.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Account no longer exists",
				Code:  http.StatusUnauthorized,
			})
			return
		}
		c.logger.Error("failed to load account", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to load account",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	ctx.JSON(http.StatusOK, convertUser(user))
}

// @Summary Change password
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequestDTO true "Current and new password"
// @Success 200 "Password updated"
// @Failure 400 {object} http_common.ErrorResponse "Validation failed"
// @Failure 401 {object} http_common.ErrorResponse "Wrong current password"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/password [put]
func (c *Controller) updatePassword(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)

	var req UpdatePasswordRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid request body",
			Code:  http.StatusBadRequest,
		})
		return
	}

	if err := c.uc.UpdatePassword(ctx.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase_account.ErrPasswordTooShort):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "Validation failed",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		case errors.Is(err, usecase_account.ErrInvalidCredentials):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Wrong current password",
				Code:  http.StatusUnauthorized,
			})
		default:
			c.logger.Error("failed to update password", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "Failed to update password",
				Message: err.Error(),
				Code:    http.StatusInternalServerError,
			})
		}
		return
	}

	ctx.Status(http.StatusOK)
}

// @Summary Delete the account
// @Description Deletes the user's watchlist rows, then their reviews, then the account itself. There is no transaction: on a late failure the earlier deletions stay applied.
// @Tags Auth operations
// @Produce json
// @Success 204 "Account deleted"
// @Failure 401 {object} http_common.ErrorResponse "Not signed in"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/account [delete]
func (c *Controller) deleteAccount(ctx *gin.Context) {
	userID, _ := http_auth_middleware.CurrentUser(ctx)
	token := http_auth_middleware.CurrentToken(ctx)

	if err := c.uc.DeleteAccount(ctx.Request.Context(), userID); err != nil {
		c.logger.Error("failed to delete account",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
		)
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "Failed to delete account",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Other sessions of the deleted user lapse with their TTL.
	if err := c.uc.SignOut(ctx.Request.Context(), token); err != nil {
		c.logger.Warn("failed to revoke session after account deletion",
			slog.String("error", err.Error()))
	}

	ctx.Status(http.StatusNoContent)
}
