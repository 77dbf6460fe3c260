package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	searchapp "github.com/storefront/backend/internal/application/search"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// SearchHandler handles storefront search and the staff reindex
// operation
type SearchHandler struct {
	BaseHandler
	queryService *searchapp.QueryService
	indexer      *searchapp.Indexer
	requireAuth  gin.HandlerFunc
	requireStaff gin.HandlerFunc
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(queryService *searchapp.QueryService, indexer *searchapp.Indexer, requireAuth, requireStaff gin.HandlerFunc) *SearchHandler {
	return &SearchHandler{
		queryService: queryService,
		indexer:      indexer,
		requireAuth:  requireAuth,
		requireStaff: requireStaff,
	}
}

// ReindexResponse reports how many variants a rebuild indexed
type ReindexResponse struct {
	Indexed int `json:"indexed"`
}

// Search matches active products by name prefix
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit := 0
	if n, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = n
	}

	results, err := h.queryService.Search(c.Request.Context(), middleware.GetTenantID(c), query, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Reindex rebuilds the store's search index from the catalog
func (h *SearchHandler) Reindex(c *gin.Context) {
	indexed, err := h.indexer.Reindex(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ReindexResponse{Indexed: indexed})
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.POST("/admin/search/reindex", h.requireAuth, h.requireStaff, h.Reindex)
}
