package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a shopper's rating of a product. One review per
// shopper per product; enforced by the unique index.
type Review struct {
	shared.TenantAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user,priority:1"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_user,priority:2"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new product review
func NewReview(tenantID, productID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if len(comment) > 4000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 4000 characters")
	}

	return &Review{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProductID:           productID,
		UserID:              userID,
		Rating:              rating,
		Comment:             strings.TrimSpace(comment),
	}, nil
}

// Update changes the rating and comment
func (r *Review) Update(rating int, comment string) error {
	if err := validateRating(rating); err != nil {
		return err
	}
	if len(comment) > 4000 {
		return shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 4000 characters")
	}

	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()

	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return nil
}
