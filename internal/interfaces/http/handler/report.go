package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/storefront/backend/internal/application/report"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles the staff revenue dashboard
type ReportHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
	requireAuth      gin.HandlerFunc
	requireStaff     gin.HandlerFunc
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *reportapp.DashboardService, requireAuth, requireStaff gin.HandlerFunc) *ReportHandler {
	return &ReportHandler{
		dashboardService: dashboardService,
		requireAuth:      requireAuth,
		requireStaff:     requireStaff,
	}
}

// Dashboard returns the revenue summary, daily series, top products,
// and low stock list for the requested period
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var req reportapp.PeriodInput
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Revenue returns the revenue summary for the requested period
func (h *ReportHandler) Revenue(c *gin.Context) {
	var req reportapp.PeriodInput
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.dashboardService.GetRevenueSummary(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TopProducts returns the best selling products for the requested
// period
func (h *ReportHandler) TopProducts(c *gin.Context) {
	var req reportapp.PeriodInput
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	products, err := h.dashboardService.GetTopProducts(c.Request.Context(), middleware.GetTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// RegisterRoutes registers dashboard routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/dashboard", h.requireAuth, h.requireStaff)
	{
		admin.GET("", h.Dashboard)
		admin.GET("/revenue", h.Revenue)
		admin.GET("/top-products", h.TopProducts)
	}
}
