package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tenant"
	"go.uber.org/zap"
)

// MediaStorage stores store logos
type MediaStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(ctx context.Context, key string) (string, error)
}

// StoreService handles platform-level store management
type StoreService struct {
	tenantRepo tenant.Repository
	domainRepo tenant.DomainRepository
	media      MediaStorage
	eventBus   shared.EventBus
	logger     *zap.Logger
}

// NewStoreService creates a new StoreService
func NewStoreService(
	tenantRepo tenant.Repository,
	domainRepo tenant.DomainRepository,
	media MediaStorage,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *StoreService {
	return &StoreService{
		tenantRepo: tenantRepo,
		domainRepo: domainRepo,
		media:      media,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Create registers a new store, optionally mapping its first hostname
func (s *StoreService) Create(ctx context.Context, input CreateStoreInput) (*StoreResponse, error) {
	exists, err := s.tenantRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Store with this slug already exists")
	}

	t, err := tenant.NewTenant(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}
	if input.ContactEmail != "" {
		if err := t.Update(input.Name, input.ContactEmail); err != nil {
			return nil, err
		}
	}
	if input.Currency != "" {
		if err := t.SetCurrency(input.Currency); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	if input.Hostname != "" {
		if _, err := s.AddDomain(ctx, t.ID, AddDomainInput{Hostname: input.Hostname, IsPrimary: true}); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, t)
	s.logger.Info("store created",
		zap.String("tenant_id", t.ID.String()),
		zap.String("slug", t.Slug),
	)
	return ToStoreResponse(t, s.logoURL(ctx, t.LogoKey)), nil
}

// Update updates a store's details
func (s *StoreService) Update(ctx context.Context, id uuid.UUID, input UpdateStoreInput) (*StoreResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.Update(input.Name, input.ContactEmail); err != nil {
		return nil, err
	}
	if input.Currency != "" {
		if err := t.SetCurrency(input.Currency); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, t)
	return ToStoreResponse(t, s.logoURL(ctx, t.LogoKey)), nil
}

// SetStatus activates, deactivates, or suspends a store
func (s *StoreService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*StoreResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch tenant.Status(status) {
	case tenant.StatusActive:
		err = t.Activate()
	case tenant.StatusInactive:
		err = t.Deactivate()
	case tenant.StatusSuspended:
		err = t.Suspend()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown store status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, t)
	return ToStoreResponse(t, s.logoURL(ctx, t.LogoKey)), nil
}

// UploadLogo stores a logo image and links it to the store
func (s *StoreService) UploadLogo(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*StoreResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("logos/%s", id)
	if err := s.media.Upload(ctx, key, data, contentType); err != nil {
		return nil, err
	}
	if err := t.SetLogoKey(key); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return ToStoreResponse(t, s.logoURL(ctx, t.LogoKey)), nil
}

// GetByID retrieves a store
func (s *StoreService) GetByID(ctx context.Context, id uuid.UUID) (*StoreResponse, error) {
	t, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToStoreResponse(t, s.logoURL(ctx, t.LogoKey)), nil
}

// List lists stores
func (s *StoreService) List(ctx context.Context, filter ListFilter) ([]StoreResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	tenants, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StoreResponse, len(tenants))
	for i := range tenants {
		responses[i] = *ToStoreResponse(&tenants[i], s.logoURL(ctx, tenants[i].LogoKey))
	}
	return responses, total, nil
}

// AddDomain maps a hostname to a store
func (s *StoreService) AddDomain(ctx context.Context, tenantID uuid.UUID, input AddDomainInput) (*DomainResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		return nil, err
	}

	hostname, err := tenant.NormalizeHostname(input.Hostname)
	if err != nil {
		return nil, err
	}
	taken, err := s.domainRepo.ExistsByHostname(ctx, hostname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("HOSTNAME_TAKEN", "This hostname is already mapped to a store")
	}

	existing, err := s.domainRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	// The store's first hostname is always primary.
	isPrimary := input.IsPrimary || len(existing) == 0

	d, err := tenant.NewStoreDomain(tenantID, hostname, isPrimary)
	if err != nil {
		return nil, err
	}
	if isPrimary {
		if err := s.demotePrimary(ctx, existing); err != nil {
			return nil, err
		}
	}
	if err := s.domainRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	resp := ToDomainResponse(d)
	return &resp, nil
}

// SetPrimaryDomain makes one of a store's hostnames the primary domain
func (s *StoreService) SetPrimaryDomain(ctx context.Context, tenantID, domainID uuid.UUID) error {
	domains, err := s.domainRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	var target *tenant.StoreDomain
	for i := range domains {
		if domains[i].ID == domainID {
			target = &domains[i]
			break
		}
	}
	if target == nil {
		return shared.ErrNotFound
	}
	if target.IsPrimary {
		return nil
	}

	if err := s.demotePrimary(ctx, domains); err != nil {
		return err
	}
	target.MakePrimary()
	return s.domainRepo.Save(ctx, target)
}

func (s *StoreService) demotePrimary(ctx context.Context, domains []tenant.StoreDomain) error {
	for i := range domains {
		if !domains[i].IsPrimary {
			continue
		}
		domains[i].IsPrimary = false
		if err := s.domainRepo.Save(ctx, &domains[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListDomains lists a store's hostnames, primary first
func (s *StoreService) ListDomains(ctx context.Context, tenantID uuid.UUID) ([]DomainResponse, error) {
	domains, err := s.domainRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]DomainResponse, len(domains))
	for i := range domains {
		responses[i] = ToDomainResponse(&domains[i])
	}
	return responses, nil
}

// RemoveDomain unmaps a hostname. A store's last hostname cannot be
// removed, it would make the store unreachable.
func (s *StoreService) RemoveDomain(ctx context.Context, tenantID, domainID uuid.UUID) error {
	domains, err := s.domainRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return err
	}

	var found *tenant.StoreDomain
	for i := range domains {
		if domains[i].ID == domainID {
			found = &domains[i]
			break
		}
	}
	if found == nil {
		return shared.ErrNotFound
	}
	if len(domains) == 1 {
		return shared.NewDomainError("LAST_HOSTNAME", "Cannot remove a store's last hostname")
	}

	if err := s.domainRepo.Delete(ctx, found.ID); err != nil {
		return err
	}

	// Keep exactly one primary hostname per store.
	if found.IsPrimary {
		for i := range domains {
			if domains[i].ID == found.ID {
				continue
			}
			domains[i].MakePrimary()
			return s.domainRepo.Save(ctx, &domains[i])
		}
	}
	return nil
}

func (s *StoreService) logoURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.media.PublicURL(ctx, key)
	if err != nil {
		s.logger.Warn("failed to resolve logo URL", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

func (s *StoreService) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish store events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
