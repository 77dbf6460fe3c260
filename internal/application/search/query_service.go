package search

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/search"
	"github.com/storefront/backend/internal/infrastructure/config"
)

const defaultMaxResults = 50

// ResultItem is one search hit as returned to clients
type ResultItem struct {
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSlug string          `json:"product_slug"`
	SKU         string          `json:"sku"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// QueryService answers storefront search queries from the index
type QueryService struct {
	index      search.Index
	maxResults int
}

// NewQueryService creates a new QueryService
func NewQueryService(index search.Index, cfg config.SearchConfig) *QueryService {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &QueryService{index: index, maxResults: maxResults}
}

// Search matches the query against the store's index. An empty
// query returns no results.
func (s *QueryService) Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]ResultItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []ResultItem{}, nil
	}
	if limit <= 0 || limit > s.maxResults {
		limit = s.maxResults
	}

	docs, err := s.index.Search(ctx, tenantID, query, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ResultItem, len(docs))
	for i, doc := range docs {
		items[i] = ResultItem{
			VariantID:   doc.VariantID,
			ProductID:   doc.ProductID,
			ProductName: doc.ProductName,
			ProductSlug: doc.ProductSlug,
			SKU:         doc.SKU,
			Color:       doc.Color,
			Size:        doc.Size,
			Price:       doc.Price,
		}
	}
	return items, nil
}
