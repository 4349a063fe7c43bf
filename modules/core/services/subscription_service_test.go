package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/serrors"
)

// inMemTenantRepository keeps tenants in a map; enough for service-level
// behavior without a live database.
type inMemTenantRepository struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]*tenant.Tenant
}

func newInMemTenantRepository() *inMemTenantRepository {
	return &inMemTenantRepository{tenants: make(map[uuid.UUID]*tenant.Tenant)}
}

func (r *inMemTenantRepository) GetByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, tenant.ErrNotFound
	}
	return t, nil
}

func (r *inMemTenantRepository) GetByDomain(_ context.Context, domain string) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.Domain() == domain {
			return t, nil
		}
	}
	return nil, tenant.ErrNotFound
}

func (r *inMemTenantRepository) GetAll(_ context.Context) ([]*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*tenant.Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (r *inMemTenantRepository) GetExpiredAsOf(_ context.Context, now time.Time) ([]*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*tenant.Tenant
	for _, t := range r.tenants {
		if t.Status() == tenant.StatusExpired || t.Status() == tenant.StatusSuspended {
			continue
		}
		if t.EndDate() != nil && t.EndDate().Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *inMemTenantRepository) Create(_ context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[t.ID()] = t
	return t, nil
}

func (r *inMemTenantRepository) Update(_ context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[t.ID()]; !ok {
		return nil, tenant.ErrNotFound
	}
	r.tenants[t.ID()] = t
	return t, nil
}

type stubUsage struct {
	counts map[plan.Metric]int64
}

func (s *stubUsage) Count(_ context.Context, _ uuid.UUID, metric plan.Metric) (int64, error) {
	return s.counts[metric], nil
}

type fixture struct {
	repo  *inMemTenantRepository
	usage *stubUsage
	svc   *services.SubscriptionService
	now   time.Time
}

func setup(t *testing.T, opts ...services.SubscriptionOption) *fixture {
	t.Helper()
	f := &fixture{
		repo:  newInMemTenantRepository(),
		usage: &stubUsage{counts: map[plan.Metric]int64{}},
		now:   time.Now(),
	}
	opts = append([]services.SubscriptionOption{services.WithClock(func() time.Time { return f.now })}, opts...)
	f.svc = services.NewSubscriptionService(
		f.repo,
		f.usage,
		plan.DefaultCatalog(),
		eventbus.NewEventPublisher(logrus.New()),
		opts...,
	)
	return f
}

func (f *fixture) addTenant(t *testing.T, opts ...tenant.Option) *tenant.Tenant {
	t.Helper()
	tn := tenant.New("Acme", opts...)
	_, err := f.repo.Create(context.Background(), tn)
	require.NoError(t, err)
	return tn
}

func TestCheckAccess_TrialTenantCanWrite(t *testing.T) {
	f := setup(t)
	end := f.now.AddDate(0, 0, 14)
	tn := f.addTenant(t, tenant.WithStatus(tenant.StatusTrial), tenant.WithEndDate(&end))

	assert.NoError(t, f.svc.CheckAccess(context.Background(), tn.ID(), true))
	assert.NoError(t, f.svc.CheckAccess(context.Background(), tn.ID(), false))
}

func TestCheckAccess_LazyExpiryBeforeSweep(t *testing.T) {
	f := setup(t)
	past := f.now.Add(-time.Hour)
	// sweep has not run: status still says active
	tn := f.addTenant(t, tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&past))

	err := f.svc.CheckAccess(context.Background(), tn.ID(), true)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeReadOnly, serrors.CodeOf(err))

	// reads still go through
	assert.NoError(t, f.svc.CheckAccess(context.Background(), tn.ID(), false))
}

func TestCheckAccess_HardLockForcesReadOnly(t *testing.T) {
	f := setup(t)
	future := f.now.Add(24 * time.Hour)
	tn := f.addTenant(t,
		tenant.WithStatus(tenant.StatusActive),
		tenant.WithEndDate(&future),
		tenant.WithIsActive(false),
	)

	err := f.svc.CheckAccess(context.Background(), tn.ID(), true)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeReadOnly, serrors.CodeOf(err))

	assert.NoError(t, f.svc.CheckAccess(context.Background(), tn.ID(), false))
}

func TestCheckAccess_SuspendedBlocksReads(t *testing.T) {
	f := setup(t)
	tn := f.addTenant(t, tenant.WithStatus(tenant.StatusSuspended))

	err := f.svc.CheckAccess(context.Background(), tn.ID(), false)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeSuspended, serrors.CodeOf(err))

	err = f.svc.CheckAccess(context.Background(), tn.ID(), true)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeSuspended, serrors.CodeOf(err))
}

func TestCheckAccess_UnknownTenant(t *testing.T) {
	f := setup(t)

	err := f.svc.CheckAccess(context.Background(), uuid.New(), false)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeNotFound, serrors.CodeOf(err))
}

func TestCheckFeature(t *testing.T) {
	f := setup(t)
	tn := f.addTenant(t, tenant.WithTier(plan.Tier1))

	t.Run("included feature", func(t *testing.T) {
		assert.NoError(t, f.svc.CheckFeature(context.Background(), tn.ID(), plan.FeatureNC))
	})

	t.Run("missing feature names plan and tag", func(t *testing.T) {
		err := f.svc.CheckFeature(context.Background(), tn.ID(), plan.FeatureAudit)
		require.Error(t, err)
		assert.Equal(t, serrors.CodeMissingFeature, serrors.CodeOf(err))

		var base *serrors.BaseError
		require.ErrorAs(t, err, &base)
		assert.Equal(t, "AUDIT", base.Meta["feature"])
		assert.Equal(t, "tier-1", base.Meta["plan"])
	})

	t.Run("wildcard tier allows anything", func(t *testing.T) {
		unlimited := f.addTenant(t, tenant.WithTier(plan.TierUnlimited))
		assert.NoError(t, f.svc.CheckFeature(context.Background(), unlimited.ID(), plan.FeatureAudit))
	})
}

func TestCheckQuota(t *testing.T) {
	f := setup(t)
	tn := f.addTenant(t, tenant.WithTier(plan.Tier1)) // process limit 10

	t.Run("below limit", func(t *testing.T) {
		f.usage.counts[plan.MetricProcesses] = 9
		assert.NoError(t, f.svc.CheckQuota(context.Background(), tn.ID(), plan.MetricProcesses))
	})

	t.Run("at limit", func(t *testing.T) {
		f.usage.counts[plan.MetricProcesses] = 10
		err := f.svc.CheckQuota(context.Background(), tn.ID(), plan.MetricProcesses)
		require.Error(t, err)
		assert.Equal(t, serrors.CodeQuotaExceeded, serrors.CodeOf(err))
	})

	t.Run("unlimited tier never rejects", func(t *testing.T) {
		unlimited := f.addTenant(t, tenant.WithTier(plan.TierUnlimited))
		f.usage.counts[plan.MetricProcesses] = 100000
		assert.NoError(t, f.svc.CheckQuota(context.Background(), unlimited.ID(), plan.MetricProcesses))
	})
}

func TestDetails(t *testing.T) {
	f := setup(t)
	end := f.now.AddDate(0, 6, 0)
	tn := f.addTenant(t, tenant.WithTier(plan.Tier2), tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&end))
	f.usage.counts[plan.MetricProcesses] = 7

	details, err := f.svc.Details(context.Background(), tn.ID())
	require.NoError(t, err)

	assert.Equal(t, plan.Tier2, details.CurrentPlan)
	assert.Equal(t, "Standard", details.PlanName)
	assert.Equal(t, tenant.StatusActive, details.Status)
	assert.False(t, details.IsReadOnly)
	assert.Equal(t, int64(7), details.Usage[plan.MetricProcesses].Used)
	assert.Equal(t, 25, details.Usage[plan.MetricProcesses].Limit)
	assert.Contains(t, details.AvailableFeatures, plan.FeatureAudit)
	require.NotNil(t, details.NextPlanSuggestion)
	assert.Equal(t, plan.Tier3, *details.NextPlanSuggestion)
}

func TestDetails_TopTierHasNoSuggestion(t *testing.T) {
	f := setup(t)
	tn := f.addTenant(t, tenant.WithTier(plan.TierUnlimited))

	details, err := f.svc.Details(context.Background(), tn.ID())
	require.NoError(t, err)
	assert.Nil(t, details.NextPlanSuggestion)
}

func TestUpgrade_ResetsEndDate(t *testing.T) {
	f := setup(t)
	past := f.now.Add(-time.Hour)
	tn := f.addTenant(t,
		tenant.WithStatus(tenant.StatusExpired),
		tenant.WithEndDate(&past),
		tenant.WithIsActive(false),
	)

	upgraded, err := f.svc.Upgrade(context.Background(), tn.ID(), plan.Tier3, 12)
	require.NoError(t, err)
	assert.Equal(t, plan.Tier3, upgraded.Tier())
	assert.Equal(t, tenant.StatusActive, upgraded.Status())
	assert.True(t, upgraded.IsActive())
	require.NotNil(t, upgraded.EndDate())
	assert.Equal(t, f.now.AddDate(0, 12, 0), *upgraded.EndDate())

	// a second upgrade resets from "now" again, it does not accumulate
	f.now = f.now.Add(time.Minute)
	again, err := f.svc.Upgrade(context.Background(), tn.ID(), plan.Tier3, 12)
	require.NoError(t, err)
	assert.Equal(t, f.now.AddDate(0, 12, 0), *again.EndDate())
}

func TestUpgrade_Validation(t *testing.T) {
	f := setup(t)
	tn := f.addTenant(t)

	_, err := f.svc.Upgrade(context.Background(), tn.ID(), plan.Tier("gold"), 12)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeInvalidInput, serrors.CodeOf(err))

	_, err = f.svc.Upgrade(context.Background(), tn.ID(), plan.Tier2, 0)
	require.Error(t, err)
	assert.Equal(t, serrors.CodeInvalidInput, serrors.CodeOf(err))
}

func TestSuspendAndReactivate(t *testing.T) {
	f := setup(t)
	tn := f.addTenant(t, tenant.WithStatus(tenant.StatusActive))

	suspended, err := f.svc.Suspend(context.Background(), tn.ID())
	require.NoError(t, err)
	assert.True(t, suspended.IsSuspended())

	// suspended tenants are fully locked out
	err = f.svc.CheckAccess(context.Background(), tn.ID(), false)
	assert.Equal(t, serrors.CodeSuspended, serrors.CodeOf(err))

	reactivated, err := f.svc.Reactivate(context.Background(), tn.ID())
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusActive, reactivated.Status())
	assert.NoError(t, f.svc.CheckAccess(context.Background(), tn.ID(), true))
}

func TestSweepExpired(t *testing.T) {
	f := setup(t)
	past := f.now.Add(-time.Hour)
	future := f.now.Add(24 * time.Hour)

	overdue := f.addTenant(t, tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&past))
	current := f.addTenant(t, tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&future))
	// already swept once, must not be picked up again
	f.addTenant(t, tenant.WithStatus(tenant.StatusExpired), tenant.WithEndDate(&past))

	swept, err := f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	got, err := f.repo.GetByID(context.Background(), overdue.ID())
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusExpired, got.Status())
	assert.False(t, got.IsActive())

	got, err = f.repo.GetByID(context.Background(), current.ID())
	require.NoError(t, err)
	assert.Equal(t, tenant.StatusActive, got.Status())

	// sweeping again finds nothing new
	swept, err = f.svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, swept)
}

// The gate result before the sweep must match the result after it.
func TestSweepMatchesLazyEvaluation(t *testing.T) {
	f := setup(t)
	past := f.now.Add(-time.Hour)
	tn := f.addTenant(t, tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&past))

	before := f.svc.CheckAccess(context.Background(), tn.ID(), true)
	require.Error(t, before)

	_, err := f.svc.SweepExpired(context.Background())
	require.NoError(t, err)

	after := f.svc.CheckAccess(context.Background(), tn.ID(), true)
	require.Error(t, after)
	assert.Equal(t, serrors.CodeOf(before), serrors.CodeOf(after))
}
