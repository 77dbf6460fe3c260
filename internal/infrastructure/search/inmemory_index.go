package search

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/search"
)

// InMemoryIndex implements search.Index with in-process maps.
// Suitable for single-instance deployments and testing.
type InMemoryIndex struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]map[uuid.UUID]search.VariantDocument // tenant -> variant -> doc
}

// NewInMemoryIndex creates a new in-memory search index
func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{
		docs: make(map[uuid.UUID]map[uuid.UUID]search.VariantDocument),
	}
}

// Index upserts a variant document
func (i *InMemoryIndex) Index(ctx context.Context, doc search.VariantDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	tenantDocs, ok := i.docs[doc.TenantID]
	if !ok {
		tenantDocs = make(map[uuid.UUID]search.VariantDocument)
		i.docs[doc.TenantID] = tenantDocs
	}
	tenantDocs[doc.VariantID] = doc
	return nil
}

// Delete removes a variant document
func (i *InMemoryIndex) Delete(ctx context.Context, tenantID, variantID uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if tenantDocs, ok := i.docs[tenantID]; ok {
		delete(tenantDocs, variantID)
	}
	return nil
}

// DeleteByProduct removes all documents of a product
func (i *InMemoryIndex) DeleteByProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for variantID, doc := range i.docs[tenantID] {
		if doc.ProductID == productID {
			delete(i.docs[tenantID], variantID)
		}
	}
	return nil
}

// Search matches every query term against the index and returns
// active documents, up to limit
func (i *InMemoryIndex) Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]search.VariantDocument, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var results []search.VariantDocument
	for _, doc := range i.docs[tenantID] {
		if !doc.IsActive {
			continue
		}
		if matchesAll(doc, tokens) {
			results = append(results, doc)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}
	return results, nil
}

// Clear drops a store's entire index
func (i *InMemoryIndex) Clear(ctx context.Context, tenantID uuid.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.docs, tenantID)
	return nil
}

func matchesAll(doc search.VariantDocument, queryTokens []string) bool {
	docTokens := TokenizeAll(doc.SearchText())
	set := make(map[string]struct{}, len(docTokens))
	for _, t := range docTokens {
		set[t] = struct{}{}
	}
	for _, t := range queryTokens {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

var _ search.Index = (*InMemoryIndex)(nil)
