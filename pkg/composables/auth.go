package composables

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/qoveo/platform/pkg/constants"
)

var (
	ErrNoPrincipal = errors.New("no principal found in context")
	ErrNoTenantID  = errors.New("no tenant ID found in context")
)

// Role tags carried by verified credentials. RoleOperator is the platform
// owner identity: it may act across all tenants and bypasses the
// subscription and feature gates. It is a real role on the token, not a
// magic user ID.
type Role string

const (
	RoleOperator       Role = "operator"
	RoleAdmin          Role = "admin"
	RolePilot          Role = "pilot"
	RoleQualityManager Role = "quality_manager"
	RoleEmployee       Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOperator, RoleAdmin, RolePilot, RoleQualityManager, RoleEmployee:
		return true
	}
	return false
}

// Principal is the per-request identity derived from a verified credential.
// It is never persisted; it is reconstructed on every request.
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
	Role     Role
}

func (p *Principal) IsOperator() bool {
	return p != nil && p.Role == RoleOperator
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	ctx = context.WithValue(ctx, constants.PrincipalKey, p)
	if p != nil && p.TenantID != uuid.Nil {
		ctx = WithTenantID(ctx, p.TenantID)
	}
	return ctx
}

func UsePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(constants.PrincipalKey).(*Principal)
	if !ok || p == nil {
		return nil, ErrNoPrincipal
	}
	return p, nil
}

func WithTenantID(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, tenantID)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoTenantID
	}
	return id, nil
}

// EffectiveTenantID resolves the tenant a request operates on. Regular
// principals are pinned to their own tenant; an operator may address any
// tenant through the X-Tenant-Id header.
func EffectiveTenantID(r *http.Request) (uuid.UUID, error) {
	principal, err := UsePrincipal(r.Context())
	if err != nil {
		return uuid.Nil, err
	}
	if principal.IsOperator() {
		header := r.Header.Get("X-Tenant-Id")
		if header == "" {
			return uuid.Nil, ErrNoTenantID
		}
		return uuid.Parse(header)
	}
	if principal.TenantID == uuid.Nil {
		return uuid.Nil, ErrNoTenantID
	}
	return principal.TenantID, nil
}
