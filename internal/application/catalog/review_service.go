package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewService handles product reviews
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Submit creates a user's review of a product, or replaces the one
// they already left
func (s *ReviewService) Submit(ctx context.Context, tenantID, productID, userID uuid.UUID, input ReviewInput) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrNotFound
	}

	existing, err := s.reviewRepo.FindByProductAndUser(ctx, tenantID, productID, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var review *catalog.Review
	if existing != nil {
		if err := existing.Update(input.Rating, input.Comment); err != nil {
			return nil, err
		}
		review = existing
	} else {
		review, err = catalog.NewReview(tenantID, productID, userID, input.Rating, input.Comment)
		if err != nil {
			return nil, err
		}
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	return ToReviewResponse(review), nil
}

// List lists a product's reviews with its rating summary
func (s *ReviewService) List(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]ReviewResponse, *RatingSummary, error) {
	reviews, err := s.reviewRepo.FindByProduct(ctx, tenantID, productID, filter)
	if err != nil {
		return nil, nil, err
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, tenantID, productID)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ToReviewResponse(&reviews[i])
	}
	return responses, &RatingSummary{Average: avg, Count: count}, nil
}

// Delete removes a review. Shoppers may only delete their own review,
// staff may delete any.
func (s *ReviewService) Delete(ctx context.Context, tenantID, reviewID, requesterID uuid.UUID, isStaff bool) error {
	review, err := s.reviewRepo.FindByID(ctx, tenantID, reviewID)
	if err != nil {
		return err
	}
	if !isStaff && review.UserID != requesterID {
		return shared.NewDomainError("FORBIDDEN", "You may only delete your own review")
	}
	return s.reviewRepo.Delete(ctx, tenantID, reviewID)
}
