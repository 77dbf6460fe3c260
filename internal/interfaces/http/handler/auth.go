package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles shopper authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	jwtService  *auth.JWTService
	requireAuth gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, jwtService *auth.JWTService, requireAuth gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		requireAuth: requireAuth,
	}
}

// SignupRequest represents a request to register a shopper account
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email,max=200"`
	Password  string `json:"password" binding:"required,min=8,max=100"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents a logout request. The refresh token is
// revoked alongside the access token when provided.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries issued tokens and the account they belong to
type TokenResponse struct {
	AccessToken           string               `json:"access_token"`
	RefreshToken          string               `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time            `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time            `json:"refresh_token_expires_at"`
	TokenType             string               `json:"token_type"`
	User                  identityapp.UserInfo `json:"user"`
}

func toTokenResponse(result *identityapp.LoginResult) TokenResponse {
	return TokenResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
		User:                  result.User,
	}
}

// Signup registers a shopper account on the current store
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), middleware.GetTenantID(c), identityapp.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTokenResponse(result))
}

// Login authenticates a shopper on the current store
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), middleware.GetTenantID(c), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTokenResponse(result))
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), identityapp.RefreshInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTokenResponse(result))
}

// Logout revokes the current access token and, when provided, the
// refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identityapp.LogoutInput{
		AccessJTI: claims.ID,
		AccessTTL: claims.GetRemainingTTL(),
	}
	if req.RefreshToken != "" {
		if refreshClaims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken); err == nil {
			input.RefreshJTI = refreshClaims.ID
			input.RefreshTTL = refreshClaims.GetRemainingTTL()
		}
	}

	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.requireAuth, h.Logout)
	}
}
