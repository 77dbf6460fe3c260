package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// CartSessionKey is the context key for the cart session ID
const CartSessionKey = "cart_session_id"

// CartSession assigns every visitor a cart session cookie. The session
// ID keys the cart in Redis; no account is needed to shop.
func CartSession(cfg config.CartConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err == nil {
			// Session IDs key cart entries, accept only well-formed ones
			if _, parseErr := uuid.Parse(sessionID); parseErr != nil {
				sessionID = ""
			}
		}
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				Secure:   cfg.CookieSecure,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(CartSessionKey, sessionID)
		c.Next()
	}
}

// GetCartSessionID retrieves the cart session ID from the gin context
func GetCartSessionID(c *gin.Context) string {
	return c.GetString(CartSessionKey)
}
