package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/search"
)

// RedisIndex implements search.Index as a Redis inverted index.
//
// Per store it keeps:
//
//	search:{tenant}:doc:{variant}      JSON document
//	search:{tenant}:tok:{token}        set of variant IDs
//	search:{tenant}:docs               set of all variant IDs
//
// A query tokenizes the input and intersects the token sets with
// SINTER, so every term must match.
type RedisIndex struct {
	client *redis.Client
}

// NewRedisIndex creates a Redis-backed search index
func NewRedisIndex(client *redis.Client) *RedisIndex {
	return &RedisIndex{client: client}
}

// Index upserts a variant document
func (i *RedisIndex) Index(ctx context.Context, doc search.VariantDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	// Drop stale token memberships before writing the new ones
	if err := i.Delete(ctx, doc.TenantID, doc.VariantID); err != nil {
		return err
	}

	variantID := doc.VariantID.String()
	_, err = i.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, docKey(doc.TenantID, doc.VariantID), data, 0)
		pipe.SAdd(ctx, docsKey(doc.TenantID), variantID)
		for _, token := range TokenizeAll(doc.SearchText()) {
			pipe.SAdd(ctx, tokenKey(doc.TenantID, token), variantID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	return nil
}

// Delete removes a variant document and its token memberships
func (i *RedisIndex) Delete(ctx context.Context, tenantID, variantID uuid.UUID) error {
	doc, err := i.getDocument(ctx, tenantID, variantID)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	id := variantID.String()
	_, err = i.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, token := range TokenizeAll(doc.SearchText()) {
			pipe.SRem(ctx, tokenKey(tenantID, token), id)
		}
		pipe.SRem(ctx, docsKey(tenantID), id)
		pipe.Del(ctx, docKey(tenantID, variantID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DeleteByProduct removes all documents of a product
func (i *RedisIndex) DeleteByProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	ids, err := i.client.SMembers(ctx, docsKey(tenantID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for _, raw := range ids {
		variantID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		doc, err := i.getDocument(ctx, tenantID, variantID)
		if err != nil {
			return err
		}
		if doc == nil || doc.ProductID != productID {
			continue
		}
		if err := i.Delete(ctx, tenantID, variantID); err != nil {
			return err
		}
	}
	return nil
}

// Search matches every query term against the index and returns
// active documents, up to limit
func (i *RedisIndex) Search(ctx context.Context, tenantID uuid.UUID, query string, limit int) ([]search.VariantDocument, error) {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	keys := make([]string, len(tokens))
	for idx, token := range tokens {
		keys[idx] = tokenKey(tenantID, token)
	}

	ids, err := i.client.SInter(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to intersect token sets: %w", err)
	}

	results := make([]search.VariantDocument, 0, len(ids))
	for _, raw := range ids {
		if limit > 0 && len(results) >= limit {
			break
		}
		variantID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		doc, err := i.getDocument(ctx, tenantID, variantID)
		if err != nil {
			return nil, err
		}
		if doc == nil || !doc.IsActive {
			continue
		}
		results = append(results, *doc)
	}
	return results, nil
}

// Clear drops a store's entire index
func (i *RedisIndex) Clear(ctx context.Context, tenantID uuid.UUID) error {
	ids, err := i.client.SMembers(ctx, docsKey(tenantID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for _, raw := range ids {
		variantID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		if err := i.Delete(ctx, tenantID, variantID); err != nil {
			return err
		}
	}
	return i.client.Del(ctx, docsKey(tenantID)).Err()
}

func (i *RedisIndex) getDocument(ctx context.Context, tenantID, variantID uuid.UUID) (*search.VariantDocument, error) {
	data, err := i.client.Get(ctx, docKey(tenantID, variantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	var doc search.VariantDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

func docKey(tenantID, variantID uuid.UUID) string {
	return fmt.Sprintf("search:%s:doc:%s", tenantID, variantID)
}

func docsKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("search:%s:docs", tenantID)
}

func tokenKey(tenantID uuid.UUID, token string) string {
	return fmt.Sprintf("search:%s:tok:%s", tenantID, token)
}

var _ search.Index = (*RedisIndex)(nil)
