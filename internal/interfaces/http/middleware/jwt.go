package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTIsStaffKey = "jwt_is_staff"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the authentication middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// Blacklist rejects revoked tokens; nil disables the check
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// RequireAuth creates middleware that rejects requests without a valid
// access token. When the request already carries a resolved store, the
// token must belong to that store.
func RequireAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, cfg.JWTService)
		if err != nil {
			abortUnauthorized(c, cfg.Logger, err)
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open: Redis being down should not lock everyone out
				if cfg.Logger != nil {
					cfg.Logger.Error("token blacklist check failed", zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, cfg.Logger, auth.ErrTokenRevoked)
				return
			}
		}

		if storeID, ok := c.Get(TenantIDKey); ok {
			if id, ok := storeID.(uuid.UUID); ok && claims.TenantID != id.String() {
				abortUnauthorized(c, cfg.Logger, auth.ErrInvalidToken)
				return
			}
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, cfg.Logger, auth.ErrInvalidClaims)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)
		c.Set(JWTIsStaffKey, claims.IsStaff)
		c.Next()
	}
}

// RequireStaff creates middleware that rejects non-staff users.
// Must run after RequireAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"Staff access required",
			))
			return
		}
		c.Next()
	}
}

// OptionalAuth extracts claims when a valid token is present but never
// rejects the request. Storefront endpoints use it so logged-in
// shoppers are recognized without requiring a login.
func OptionalAuth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, cfg.JWTService)
		if err != nil {
			c.Next()
			return
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			c.Next()
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, userID)
		c.Set(JWTIsStaffKey, claims.IsStaff)
		c.Next()
	}
}

func extractClaims(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.ValidateAccessToken(tokenString)
}

func abortUnauthorized(c *gin.Context, logger *zap.Logger, err error) {
	if logger != nil {
		logger.Debug("authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		message = "Token has expired"
	case auth.ErrTokenRevoked:
		code = "TOKEN_REVOKED"
		message = "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetClaims retrieves JWT claims from the gin context
func GetClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetUserID retrieves the authenticated user's ID, uuid.Nil when
// the request is anonymous
func GetUserID(c *gin.Context) uuid.UUID {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// IsStaff reports whether the authenticated user is a staff member
func IsStaff(c *gin.Context) bool {
	isStaff, exists := c.Get(JWTIsStaffKey)
	if !exists {
		return false
	}
	if b, ok := isStaff.(bool); ok {
		return b
	}
	return false
}
