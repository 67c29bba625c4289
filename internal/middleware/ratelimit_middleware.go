package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/pkg/ratelimit"
)

// RateLimit gates requests through a shared fixed-window limiter. Requests
// that cannot be admitted or queued receive 429; queued requests block
// until the limiter admits them or the client goes away.
func RateLimit(limiter *ratelimit.FixedWindow) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := limiter.Acquire(c.Request.Context())
		if err != nil {
			if errors.Is(err, ratelimit.ErrLimitExceeded) {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimitExceeded, "Too many requests")
				errorDetail = errorDetail.WithDetails("Request rate limit exceeded, try again later")

				c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
				return
			}

			// Context ended while waiting; the client is gone
			c.Abort()
			return
		}

		c.Next()
	}
}
