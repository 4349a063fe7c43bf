package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/serrors"
)

// UsageCounter reports current live usage for a quota metric.
type UsageCounter interface {
	Count(ctx context.Context, tenantID uuid.UUID, metric plan.Metric) (int64, error)
}

// SubscriptionService is the lifecycle core: it decides, per request,
// whether a tenant may read or write, whether its plan includes a feature,
// and whether a quota metric has headroom. All checks are read-only and run
// on the hot path, so each costs one indexed lookup.
type SubscriptionService struct {
	repo      tenant.Repository
	usage     UsageCounter
	catalog   *plan.Catalog
	publisher eventbus.EventBus
	clock     func() time.Time
}

type SubscriptionOption func(*SubscriptionService)

// WithClock overrides the service clock. Tests use it to cross the expiry
// boundary without sleeping.
func WithClock(clock func() time.Time) SubscriptionOption {
	return func(s *SubscriptionService) {
		s.clock = clock
	}
}

func NewSubscriptionService(
	repo tenant.Repository,
	usage UsageCounter,
	catalog *plan.Catalog,
	publisher eventbus.EventBus,
	opts ...SubscriptionOption,
) *SubscriptionService {
	s := &SubscriptionService{
		repo:      repo,
		usage:     usage,
		catalog:   catalog,
		publisher: publisher,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAccess gates a request. Suspension blocks everything, reads
// included. Expiry, evaluated lazily against the clock, blocks only writes:
// an expired tenant keeps read access so the client can render an upgrade
// prompt over its data.
func (s *SubscriptionService) CheckAccess(ctx context.Context, tenantID uuid.UUID, isWrite bool) error {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return serrors.NewNotFound("tenant")
		}
		return err
	}

	if t.IsSuspended() {
		return serrors.NewSuspended()
	}

	if isWrite && t.IsExpiredAt(s.clock()) {
		return serrors.NewReadOnly(string(t.Tier()))
	}

	return nil
}

// CheckFeature verifies the tenant's plan includes the feature tag. The
// rejection names the missing feature and the current plan for UX; it never
// exposes another tenant's data.
func (s *SubscriptionService) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature plan.Feature) error {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return serrors.NewNotFound("tenant")
		}
		return err
	}

	if !s.catalog.HasFeature(t.Tier(), feature) {
		return serrors.NewMissingFeature(string(feature), string(t.Tier()))
	}
	return nil
}

// CheckQuota compares current usage against the plan ceiling. The check and
// the subsequent insert are not atomic: concurrent creations can each pass
// before either commits, briefly exceeding the ceiling. That is an accepted
// soft limit; it self-corrects on the next check.
func (s *SubscriptionService) CheckQuota(ctx context.Context, tenantID uuid.UUID, metric plan.Metric) error {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return serrors.NewNotFound("tenant")
		}
		return err
	}

	limit, ok := s.catalog.Limit(t.Tier(), metric)
	if !ok {
		return errors.Errorf("no limit defined for tier %s metric %s", t.Tier(), metric)
	}
	if limit == plan.Unlimited {
		return nil
	}

	count, err := s.usage.Count(ctx, tenantID, metric)
	if err != nil {
		return errors.Wrap(err, "count usage")
	}
	if count >= int64(limit) {
		return serrors.NewQuotaExceeded(string(metric), limit)
	}
	return nil
}

type MetricUsage struct {
	Used  int64
	Limit int
}

type SubscriptionDetails struct {
	CurrentPlan        plan.Tier
	PlanName           string
	Status             tenant.Status
	IsReadOnly         bool
	EndDate            *time.Time
	Usage              map[plan.Metric]MetricUsage
	AvailableFeatures  []plan.Feature
	NextPlanSuggestion *plan.Tier
}

// Details aggregates plan, status, usage and the next tier up for display.
func (s *SubscriptionService) Details(ctx context.Context, tenantID uuid.UUID) (*SubscriptionDetails, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, serrors.NewNotFound("tenant")
		}
		return nil, err
	}

	def, ok := s.catalog.Definition(t.Tier())
	if !ok {
		return nil, errors.Errorf("tenant %s has unknown tier %s", t.ID(), t.Tier())
	}

	usage := make(map[plan.Metric]MetricUsage, len(def.Limits))
	for metric, limit := range def.Limits {
		count, err := s.usage.Count(ctx, tenantID, metric)
		if err != nil {
			return nil, errors.Wrapf(err, "count usage for %s", metric)
		}
		usage[metric] = MetricUsage{Used: count, Limit: limit}
	}

	details := &SubscriptionDetails{
		CurrentPlan:       t.Tier(),
		PlanName:          def.Name,
		Status:            t.Status(),
		IsReadOnly:        t.IsExpiredAt(s.clock()),
		EndDate:           t.EndDate(),
		Usage:             usage,
		AvailableFeatures: s.catalog.Features(t.Tier()),
	}
	if next, ok := s.catalog.NextTier(t.Tier()); ok {
		details.NextPlanSuggestion = &next
	}
	return details, nil
}

// Upgrade is the trusted write path invoked after payment confirmation
// upstream. The end date resets to now + months on every call.
func (s *SubscriptionService) Upgrade(ctx context.Context, tenantID uuid.UUID, newTier plan.Tier, months int) (*tenant.Tenant, error) {
	if !newTier.Valid() {
		return nil, serrors.NewInvalidInput("unknown plan tier: " + string(newTier))
	}
	if months <= 0 {
		return nil, serrors.NewInvalidInput("upgrade duration must be at least one month")
	}

	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, serrors.NewNotFound("tenant")
		}
		return nil, err
	}

	fromTier := t.Tier()
	t.Upgrade(newTier, months, s.clock())

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, errors.Wrap(err, "update tenant")
	}

	s.publisher.Publish(tenant.NewUpgradedEvent(updated, fromTier, newTier, months))
	return updated, nil
}

func (s *SubscriptionService) Suspend(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, serrors.NewNotFound("tenant")
		}
		return nil, err
	}

	t.Suspend(s.clock())
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, errors.Wrap(err, "update tenant")
	}

	s.publisher.Publish(tenant.NewSuspendedEvent(updated))
	return updated, nil
}

func (s *SubscriptionService) Reactivate(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error) {
	t, err := s.repo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, serrors.NewNotFound("tenant")
		}
		return nil, err
	}

	t.Reactivate(s.clock())
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, errors.Wrap(err, "update tenant")
	}

	s.publisher.Publish(tenant.NewReactivatedEvent(updated))
	return updated, nil
}

// SweepExpired flips status to expired for every tenant past its end date.
// Each tenant is updated independently: a failure mid-sweep leaves earlier
// updates committed, and re-running is safe because the assignment is pure.
// Lazy evaluation in CheckAccess already treats these tenants as expired, so
// the sweep only reconciles stored state.
func (s *SubscriptionService) SweepExpired(ctx context.Context) (int, error) {
	expired, err := s.repo.GetExpiredAsOf(ctx, s.clock())
	if err != nil {
		return 0, errors.Wrap(err, "list expired tenants")
	}

	swept := 0
	var errs []error
	for _, t := range expired {
		t.MarkExpired(s.clock())
		updated, err := s.repo.Update(ctx, t)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "sweep tenant %s", t.ID()))
			continue
		}
		s.publisher.Publish(tenant.NewExpiredEvent(updated))
		swept++
	}
	return swept, stderrors.Join(errs...)
}
