package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartTestConfig() config.CartConfig {
	return config.CartConfig{
		CookieName:   "cart_session",
		TTL:          14 * 24 * time.Hour,
		CookieSecure: false,
	}
}

func TestCartSession(t *testing.T) {
	t.Run("issues a session cookie on first visit", func(t *testing.T) {
		var sessionID string
		router := gin.New()
		router.Use(CartSession(cartTestConfig()))
		router.GET("/test", func(c *gin.Context) {
			sessionID = GetCartSessionID(c)
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		require.NotEmpty(t, sessionID)
		_, err := uuid.Parse(sessionID)
		assert.NoError(t, err)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "cart_session", cookies[0].Name)
		assert.Equal(t, sessionID, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("reuses an existing session cookie", func(t *testing.T) {
		existing := uuid.NewString()
		var sessionID string

		router := gin.New()
		router.Use(CartSession(cartTestConfig()))
		router.GET("/test", func(c *gin.Context) {
			sessionID = GetCartSessionID(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: "cart_session", Value: existing})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, existing, sessionID)
	})

	t.Run("replaces an invalid session cookie", func(t *testing.T) {
		var sessionID string

		router := gin.New()
		router.Use(CartSession(cartTestConfig()))
		router.GET("/test", func(c *gin.Context) {
			sessionID = GetCartSessionID(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: "cart_session", Value: "not-a-uuid"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.NotEmpty(t, sessionID)
		assert.NotEqual(t, "not-a-uuid", sessionID)
		_, err := uuid.Parse(sessionID)
		assert.NoError(t, err)
	})
}
