package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/procurement"
	"github.com/storefront/backend/internal/domain/shared"
)

// SupplierService handles supplier management
type SupplierService struct {
	supplierRepo procurement.SupplierRepository
	poRepo       procurement.PurchaseOrderRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo procurement.SupplierRepository, poRepo procurement.PurchaseOrderRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		poRepo:       poRepo,
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, input SupplierInput) (*SupplierResponse, error) {
	supplier, err := procurement.NewSupplier(tenantID, input.Name)
	if err != nil {
		return nil, err
	}
	if err := applyContact(supplier, input); err != nil {
		return nil, err
	}
	if input.Notes != "" {
		if err := supplier.Update(input.Name, input.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Update updates a supplier's details
func (s *SupplierService) Update(ctx context.Context, tenantID, id uuid.UUID, input SupplierInput) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(input.Name, input.Notes); err != nil {
		return nil, err
	}
	if err := applyContact(supplier, input); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// SetActive activates or deactivates a supplier
func (s *SupplierService) SetActive(ctx context.Context, tenantID, id uuid.UUID, active bool) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if active {
		err = supplier.Activate()
	} else {
		err = supplier.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetByID retrieves a supplier
func (s *SupplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List lists suppliers
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = *ToSupplierResponse(&suppliers[i])
	}
	return responses, total, nil
}

// Delete removes a supplier. Suppliers with purchase orders on file
// cannot be deleted, only deactivated.
func (s *SupplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}

	pos, err := s.poRepo.FindBySupplier(ctx, tenantID, id, shared.DefaultFilter())
	if err != nil {
		return err
	}
	if len(pos) > 0 {
		return shared.NewDomainError("SUPPLIER_IN_USE", "Supplier has purchase orders and cannot be deleted")
	}

	return s.supplierRepo.Delete(ctx, tenantID, id)
}

func applyContact(supplier *procurement.Supplier, input SupplierInput) error {
	if input.ContactName == "" && input.ContactEmail == "" && input.ContactPhone == "" {
		return nil
	}
	return supplier.SetContact(input.ContactName, input.ContactEmail, input.ContactPhone)
}
