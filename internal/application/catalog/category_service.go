package catalog

import (
	"errors"

	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CategoryService handles category management and browsing
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, tenantID, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	category, err := catalog.NewCategory(tenantID, req.Name, req.Slug)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, tenantID, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != category.Slug {
		exists, err := s.categoryRepo.ExistsBySlug(ctx, tenantID, req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
		}
	}

	if err := category.Update(req.Name, req.Slug); err != nil {
		return nil, err
	}
	if err := category.SetParent(req.ParentID); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetBySlug retrieves a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves all categories of a store ordered by sort order
func (s *CategoryService) List(ctx context.Context, tenantID uuid.UUID) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// Delete removes a category. A category that still has products is
// protected; empty ones are removed and their children move up to
// the root.
func (s *CategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	filter := shared.DefaultFilter()
	filter.Filters["category_id"] = id
	attached, err := s.productRepo.Count(ctx, tenantID, filter)
	if err != nil {
		return err
	}
	if attached > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products assigned to it")
	}

	children, err := s.categoryRepo.FindChildren(ctx, tenantID, id)
	if err != nil {
		return err
	}
	for i := range children {
		if err := children[i].SetParent(nil); err != nil {
			return err
		}
		if err := s.categoryRepo.Save(ctx, &children[i]); err != nil {
			return err
		}
	}

	return s.categoryRepo.Delete(ctx, tenantID, id)
}
