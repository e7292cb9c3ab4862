package http_ratelimit_middleware

import (
	"net/http"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// New returns a global token-bucket limiter middleware.
func New(rps rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rps, burst)

	return func(ctx *gin.Context) {
		if !limiter.Allow() {
			ctx.JSON(http.StatusTooManyRequests, http_common.ErrorResponse{
				Error: "Too many requests",
				Code:  http.StatusTooManyRequests,
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
