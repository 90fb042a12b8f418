package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/interfaces/http/response"
	"ecohub.backend/pkg/logger"
	"ecohub.backend/pkg/ratelimit"
	"go.uber.org/zap"
)

// RateLimitByIP throttles requests per client IP using the injected
// limiter. A limiter backend failure allows the request through: the
// limiter is abuse protection, not a security boundary.
func RateLimitByIP(limiter ratelimit.Limiter, retryAfter int) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable, allowing request", zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, domainerrors.RateLimited())
			c.Abort()
			return
		}

		c.Next()
	}
}
