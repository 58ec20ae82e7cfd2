package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-portfolio-backend/internal/delivery/http/response"
	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/auth"
	"go-portfolio-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(domain.KeyRequestID).(string)
		c.String(http.StatusOK, fromCtx)
	})

	t.Run("Should generate an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("Should reuse a well-formed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("Should replace a malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/invalid", func(c *gin.Context) {
		_ = c.Error(apperror.Unprocessable("Validation failed", domain.ValidationErrors{"phone": {"Enter a valid 10-digit phone number"}}))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	t.Run("Should render app errors with details", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invalid", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Validation failed", body.Message)
		assert.NotEmpty(t, body.RequestID)
		assert.Contains(t, w.Body.String(), `"phone":["Enter a valid 10-digit phone number"]`)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "relation")
	})
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	verifier, err := auth.NewVerifier(testSecret, nil)
	require.NoError(t, err)
	r.Use(AuthMiddleware(verifier, security.Nop()))
	r.GET("/me", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(domain.KeyUserID).(string)
		c.String(http.StatusOK, c.GetString(string(domain.KeyUserID))+"|"+fromCtx)
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should accept a valid token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := call("Bearer " + token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1|user-1", w.Body.String())
	})

	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{"Should reject missing header", func(t *testing.T) string { return "" }},
		{"Should reject non bearer scheme", func(t *testing.T) string { return "Basic abc" }},
		{"Should reject wrong secret", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()})
		}},
		{"Should reject expired token", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u", "exp": time.Now().Add(-time.Minute).Unix()})
		}},
		{"Should reject token without expiry", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u"})
		}},
		{"Should reject other algorithms", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"sub": "u", "exp": time.Now().Add(time.Hour).Unix()})
		}},
		{"Should reject missing subject", func(t *testing.T) string {
			return "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(tt.header(t))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(isProduction bool) *gin.Engine {
		r := gin.New()
		r.Use(CORSMiddleware("https://folio.example.com/", isProduction))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should allow configured frontend", func(t *testing.T) {
		w := preflight(newRouter(true), "https://folio.example.com")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://folio.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should allow localhost only outside production", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, preflight(newRouter(false), "http://localhost:3000").Code)
		assert.Equal(t, http.StatusForbidden, preflight(newRouter(true), "http://localhost:3000").Code)
	})

	t.Run("Should not echo unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		newRouter(true).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(nil, security.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.Use(rl.Middleware(GlobalRateLimitConfig(2, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	t.Run("Should allow requests under the limit", func(t *testing.T) {
		w := call()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, http.StatusOK, call().Code)
	})

	t.Run("Should reject over the limit with retry hint", func(t *testing.T) {
		w := call()
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("Should reset after the window", func(t *testing.T) {
		now = now.Add(61 * time.Second)
		assert.Equal(t, http.StatusOK, call().Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware())
	r.GET("/v1/profile", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestUserQuota(t *testing.T) {
	newRouter := func(limiter *security.QuotaLimiter) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(string(domain.KeyUserID), "user-1")
			c.Next()
		})
		r.Use(UserQuota(limiter, security.Nop(), "import"))
		r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	t.Run("Should pass through without redis", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(security.NewQuotaLimiter(nil, 1, time.Hour)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Quota-Remaining"))
	})

	t.Run("Should answer unavailable when the quota store is unreachable", func(t *testing.T) {
		client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
		defer client.Close()

		w := httptest.NewRecorder()
		newRouter(security.NewQuotaLimiter(client, 1, time.Hour)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "temporarily unavailable")
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})
}
