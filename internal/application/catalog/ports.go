package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VariantUsage reports whether order history or purchase orders still
// reference a variant. Referenced variants must not be deleted.
type VariantUsage interface {
	VariantInUse(ctx context.Context, tenantID, variantID uuid.UUID) (bool, error)
}

// MediaStorage stores product images and other catalog media
type MediaStorage interface {
	// Upload writes media data under the given key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes an object
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL returns the URL the storefront serves the object from
	PublicURL(ctx context.Context, key string) (string, error)
}
