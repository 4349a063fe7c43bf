package composables_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoveo/platform/pkg/composables"
)

func TestWithPrincipal_PropagatesTenantID(t *testing.T) {
	tenantID := uuid.New()
	p := &composables.Principal{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Email:    "pilot@acme.test",
		Role:     composables.RolePilot,
	}

	ctx := composables.WithPrincipal(context.Background(), p)

	got, err := composables.UsePrincipal(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	gotTenant, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
}

func TestWithPrincipal_OperatorHasNoTenant(t *testing.T) {
	p := &composables.Principal{
		UserID: uuid.New(),
		Role:   composables.RoleOperator,
	}

	ctx := composables.WithPrincipal(context.Background(), p)

	got, err := composables.UsePrincipal(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsOperator())

	_, err = composables.UseTenantID(ctx)
	assert.ErrorIs(t, err, composables.ErrNoTenantID)
}

func TestUsePrincipal_Missing(t *testing.T) {
	_, err := composables.UsePrincipal(context.Background())
	assert.ErrorIs(t, err, composables.ErrNoPrincipal)
}

func TestRole_Valid(t *testing.T) {
	cases := []struct {
		role  composables.Role
		valid bool
	}{
		{composables.RoleOperator, true},
		{composables.RoleAdmin, true},
		{composables.RolePilot, true},
		{composables.RoleQualityManager, true},
		{composables.RoleEmployee, true},
		{composables.Role("superuser"), false},
		{composables.Role(""), false},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.role.Valid())
		})
	}
}

func requestWithPrincipal(t *testing.T, p *composables.Principal) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/processes", nil)
	return req.WithContext(composables.WithPrincipal(req.Context(), p))
}

func TestEffectiveTenantID_RegularPrincipal(t *testing.T) {
	tenantID := uuid.New()
	req := requestWithPrincipal(t, &composables.Principal{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Role:     composables.RoleAdmin,
	})
	// a header must never override the principal's own tenant
	req.Header.Set("X-Tenant-Id", uuid.NewString())

	got, err := composables.EffectiveTenantID(req)
	require.NoError(t, err)
	assert.Equal(t, tenantID, got)
}

func TestEffectiveTenantID_OperatorUsesHeader(t *testing.T) {
	target := uuid.New()
	req := requestWithPrincipal(t, &composables.Principal{
		UserID: uuid.New(),
		Role:   composables.RoleOperator,
	})
	req.Header.Set("X-Tenant-Id", target.String())

	got, err := composables.EffectiveTenantID(req)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestEffectiveTenantID_OperatorWithoutHeader(t *testing.T) {
	req := requestWithPrincipal(t, &composables.Principal{
		UserID: uuid.New(),
		Role:   composables.RoleOperator,
	})

	_, err := composables.EffectiveTenantID(req)
	assert.ErrorIs(t, err, composables.ErrNoTenantID)
}

func TestEffectiveTenantID_OperatorBadHeader(t *testing.T) {
	req := requestWithPrincipal(t, &composables.Principal{
		UserID: uuid.New(),
		Role:   composables.RoleOperator,
	})
	req.Header.Set("X-Tenant-Id", "not-a-uuid")

	_, err := composables.EffectiveTenantID(req)
	assert.Error(t, err)
}

func TestEffectiveTenantID_NoPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/processes", nil)
	_, err := composables.EffectiveTenantID(req)
	assert.ErrorIs(t, err, composables.ErrNoPrincipal)
}
