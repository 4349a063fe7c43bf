package tenant_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
)

func TestNew_TrialDefaults(t *testing.T) {
	tn := tenant.New("Acme")

	assert.Equal(t, tenant.StatusTrial, tn.Status())
	assert.Equal(t, plan.TierTrial, tn.Tier())
	assert.True(t, tn.IsActive())
	require.NotNil(t, tn.EndDate())
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), *tn.EndDate(), time.Minute)
}

func TestIsExpiredAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name    string
		tn      *tenant.Tenant
		expired bool
	}{
		{
			"active with future end date",
			tenant.New("a", tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&future)),
			false,
		},
		{
			"status still active but end date passed",
			tenant.New("b", tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&past)),
			true,
		},
		{
			"hard lock overrides everything",
			tenant.New("c", tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&future), tenant.WithIsActive(false)),
			true,
		},
		{
			"no end date never expires",
			tenant.New("d", tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(nil)),
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expired, tc.tn.IsExpiredAt(now))
		})
	}
}

func TestUpgrade_ResetsNotExtends(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tn := tenant.New("Acme",
		tenant.WithStatus(tenant.StatusExpired),
		tenant.WithEndDate(&past),
		tenant.WithIsActive(false),
	)

	now := time.Now()
	tn.Upgrade(plan.Tier2, 12, now)

	assert.Equal(t, tenant.StatusActive, tn.Status())
	assert.Equal(t, plan.Tier2, tn.Tier())
	assert.True(t, tn.IsActive())
	require.NotNil(t, tn.EndDate())
	assert.Equal(t, now.AddDate(0, 12, 0), *tn.EndDate())

	// second call computes from its own "now", not on top of the last one
	later := now.Add(time.Minute)
	tn.Upgrade(plan.Tier2, 12, later)
	assert.Equal(t, later.AddDate(0, 12, 0), *tn.EndDate())
}

func TestSuspendAndReactivate(t *testing.T) {
	tn := tenant.New("Acme", tenant.WithStatus(tenant.StatusActive))
	now := time.Now()

	tn.Suspend(now)
	assert.True(t, tn.IsSuspended())
	assert.False(t, tn.IsActive())
	assert.True(t, tn.IsExpiredAt(now))

	tn.Reactivate(now)
	assert.Equal(t, tenant.StatusActive, tn.Status())
	assert.True(t, tn.IsActive())
	assert.False(t, tn.IsSuspended())
}

func TestMarkExpired_Idempotent(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	tn := tenant.New("Acme", tenant.WithStatus(tenant.StatusActive), tenant.WithEndDate(&past))
	now := time.Now()

	tn.MarkExpired(now)
	first := tn.Status()
	tn.MarkExpired(now.Add(time.Hour))

	assert.Equal(t, first, tn.Status())
	assert.Equal(t, tenant.StatusExpired, tn.Status())
	assert.False(t, tn.IsActive())
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, tenant.StatusTrial.Valid())
	assert.True(t, tenant.StatusSuspended.Valid())
	assert.False(t, tenant.Status("archived").Valid())
}
