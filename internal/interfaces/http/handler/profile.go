package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ProfileHandler handles the authenticated shopper's profile and
// address book
type ProfileHandler struct {
	BaseHandler
	profileService *identityapp.ProfileService
	requireAuth    gin.HandlerFunc
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *identityapp.ProfileService, requireAuth gin.HandlerFunc) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		requireAuth:    requireAuth,
	}
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=100"`
}

// AddressRequest represents a saved address create/update request
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	Region     string `json:"region" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,len=2"`
	Phone      string `json:"phone" binding:"max=50"`
	IsDefault  bool   `json:"is_default"`
}

func (r AddressRequest) toInput() identityapp.AddressInput {
	return identityapp.AddressInput{
		FullName:   r.FullName,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		Region:     r.Region,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		Phone:      r.Phone,
		IsDefault:  r.IsDefault,
	}
}

// Get returns the authenticated shopper's profile
func (h *ProfileHandler) Get(c *gin.Context) {
	info, err := h.profileService.Get(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Update updates the authenticated shopper's profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), identityapp.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// ChangePassword changes the authenticated shopper's password
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.profileService.ChangePassword(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), identityapp.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAddresses lists the shopper's saved addresses
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.profileService.ListAddresses(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// AddAddress saves a new address
func (h *ProfileHandler) AddAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.profileService.AddAddress(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// UpdateAddress updates a saved address
func (h *ProfileHandler) UpdateAddress(c *gin.Context) {
	addressID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := h.profileService.UpdateAddress(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), addressID, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// DeleteAddress removes a saved address
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	addressID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.profileService.DeleteAddress(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MakeDefaultAddress marks a saved address as the default
func (h *ProfileHandler) MakeDefaultAddress(c *gin.Context) {
	addressID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.profileService.MakeDefaultAddress(c.Request.Context(), middleware.GetTenantID(c), middleware.GetUserID(c), addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/me", h.requireAuth)
	{
		me.GET("", h.Get)
		me.PUT("", h.Update)
		me.PUT("/password", h.ChangePassword)

		addresses := me.Group("/addresses")
		{
			addresses.GET("", h.ListAddresses)
			addresses.POST("", h.AddAddress)
			addresses.PUT("/:id", h.UpdateAddress)
			addresses.DELETE("/:id", h.DeleteAddress)
			addresses.POST("/:id/default", h.MakeDefaultAddress)
		}
	}
}
