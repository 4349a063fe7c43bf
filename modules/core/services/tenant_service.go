package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/serrors"
)

type TenantService struct {
	repo      tenant.Repository
	publisher eventbus.EventBus
	trialDays int
}

type TenantOption func(*TenantService)

func WithTrialDays(days int) TenantOption {
	return func(s *TenantService) {
		s.trialDays = days
	}
}

func NewTenantService(repo tenant.Repository, publisher eventbus.EventBus, opts ...TenantOption) *TenantService {
	s := &TenantService{
		repo:      repo,
		publisher: publisher,
		trialDays: 14,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, serrors.NewNotFound("tenant")
		}
		return nil, err
	}
	return t, nil
}

func (s *TenantService) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	t, err := s.repo.GetByDomain(ctx, domain)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, serrors.NewNotFound("tenant")
		}
		return nil, err
	}
	return t, nil
}

func (s *TenantService) GetAll(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.repo.GetAll(ctx)
}

// Provision creates a tenant in its initial state: an active trial. Called
// by the signup/provisioning flow, not by tenants themselves.
func (s *TenantService) Provision(ctx context.Context, name, domain string) (*tenant.Tenant, error) {
	if name == "" {
		return nil, serrors.NewInvalidInput("tenant name is required")
	}

	trialEnd := time.Now().AddDate(0, 0, s.trialDays)
	t := tenant.New(name, tenant.WithDomain(domain), tenant.WithEndDate(&trialEnd))
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, errors.Wrap(err, "create tenant")
	}

	s.publisher.Publish(tenant.NewProvisionedEvent(created))
	return created, nil
}
