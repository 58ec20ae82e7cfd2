package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/auth"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware accepts bearer tokens the verifier trusts. The subject
// claim becomes the user id on both the gin and request contexts.
func AuthMiddleware(verifier *auth.Verifier, audit *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			reject(c, audit, "missing_token", "Authorization header required")
			return
		}

		claims, err := verifier.Parse(tokenString)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				reason = "expired_token"
			}
			reject(c, audit, reason, "Invalid token")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			reject(c, audit, "missing_subject", "Invalid claims")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)

		ctx := context.WithValue(c.Request.Context(), domain.KeyUserID, sub)
		ctx = context.WithValue(ctx, domain.KeyUserEmail, email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func reject(c *gin.Context, audit *security.SecurityLogger, reason, message string) {
	audit.LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), c.GetString(string(domain.KeyRequestID)), reason)
	response.Error(c, http.StatusUnauthorized, message, nil)
	c.Abort()
}
