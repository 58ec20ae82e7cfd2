package middleware

import (
	"net/http"
	"strconv"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// UserQuota limits how often an authenticated user may run the operation
// named by scope. Must run after AuthMiddleware.
func UserQuota(limiter *security.QuotaLimiter, audit *security.SecurityLogger, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(string(domain.KeyUserID))
		requestID := c.GetString(string(domain.KeyRequestID))

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), scope, userID)
		if err != nil {
			// The quota store is down; no quota was consumed.
			logger.Log.Warn("Quota check failed", "scope", scope, "request_id", requestID, "error", err)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
			c.Abort()
			return
		}
		if !allowed {
			audit.LogQuotaExceeded(c.Request.Context(), userID, c.ClientIP(), requestID, scope)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, http.StatusTooManyRequests, "Quota exceeded for this operation. Please try again later.", nil)
			c.Abort()
			return
		}
		if remaining, err := limiter.Remaining(c.Request.Context(), scope, userID); err == nil {
			c.Header("X-Quota-Remaining", strconv.Itoa(remaining))
		}
		c.Next()
	}
}
