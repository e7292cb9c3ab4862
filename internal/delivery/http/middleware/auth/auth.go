package http_auth_middleware

import (
	"log/slog"
	"net/http"
	"strings"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey = "auth_user_id"
	tokenKey  = "auth_token"
)

// TokenVerifier resolves a bearer token into the user it authenticates.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type Middleware struct {
	tokens TokenVerifier
	logger *slog.Logger
}

func New(tokens TokenVerifier) *Middleware {
	return &Middleware{
		tokens: tokens,
		logger: slog.Default(),
	}
}

// AuthRequired rejects requests without a valid bearer token and injects the
// authenticated user id into the request context. Handlers never consult
// ambient session state; the user always arrives through here.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Missing Authorization header",
				Code:  http.StatusUnauthorized,
			})
			ctx.Abort()
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Warn("invalid token", slog.String("error", err.Error()))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  http.StatusUnauthorized,
			})
			ctx.Abort()
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Set(tokenKey, token)
		ctx.Next()
	}
}

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// CurrentUser returns the user id set by AuthRequired.
func CurrentUser(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CurrentToken returns the raw bearer token set by AuthRequired.
func CurrentToken(ctx *gin.Context) string {
	return ctx.GetString(tokenKey)
}
