package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/pkg/ratelimit"
)

// RateLimit keys requests by client IP. Limiter failures let the request
// through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		allowed, err := limiter.Allow(ctx.Request.Context(), ctx.ClientIP())
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			ctx.Next()
			return
		}
		if !allowed {
			response.RenderErr(ctx, response.ErrTooManyRequests())
			return
		}

		ctx.Next()
	}
}
