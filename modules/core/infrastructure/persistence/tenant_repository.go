package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/modules/core/infrastructure/persistence/models"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/mapping"
)

var (
	ErrTenantNotFound = tenant.ErrNotFound
)

const (
	tenantFindQuery = `SELECT id, name, domain, tier, status, end_date, is_active, created_at, updated_at FROM tenants`
)

type TenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &TenantRepository{}
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	query := tenantFindQuery + " WHERE id = $1"
	tenants, err := r.queryTenants(ctx, query, id.String())
	if err != nil {
		return nil, err
	}

	if len(tenants) == 0 {
		return nil, ErrTenantNotFound
	}

	return tenants[0], nil
}

func (r *TenantRepository) GetByDomain(ctx context.Context, domain string) (*tenant.Tenant, error) {
	query := tenantFindQuery + " WHERE domain = $1"
	tenants, err := r.queryTenants(ctx, query, strings.ToLower(strings.TrimSpace(domain)))
	if err != nil {
		return nil, err
	}

	if len(tenants) == 0 {
		return nil, ErrTenantNotFound
	}

	return tenants[0], nil
}

func (r *TenantRepository) GetAll(ctx context.Context) ([]*tenant.Tenant, error) {
	return r.queryTenants(ctx, tenantFindQuery+" ORDER BY created_at DESC")
}

func (r *TenantRepository) GetExpiredAsOf(ctx context.Context, now time.Time) ([]*tenant.Tenant, error) {
	query := tenantFindQuery + ` WHERE end_date IS NOT NULL AND end_date < $1 AND status NOT IN ($2, $3)`
	return r.queryTenants(ctx, query, now, string(tenant.StatusExpired), string(tenant.StatusSuspended))
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	domain := strings.ToLower(strings.TrimSpace(t.Domain()))
	query := `
		INSERT INTO tenants (id, name, domain, tier, status, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		t.ID().String(),
		t.Name(),
		mapping.ValueToSQLNullString(domain),
		string(t.Tier()),
		string(t.Status()),
		mapping.PointerToSQLNullTime(t.EndDate()),
		t.IsActive(),
		t.CreatedAt(),
		t.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	domain := strings.ToLower(strings.TrimSpace(t.Domain()))
	query := `
		UPDATE tenants
		SET name = $1, domain = $2, tier = $3, status = $4, end_date = $5, is_active = $6, updated_at = $7
		WHERE id = $8
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		t.Name(),
		mapping.ValueToSQLNullString(domain),
		string(t.Tier()),
		string(t.Status()),
		mapping.PointerToSQLNullTime(t.EndDate()),
		t.IsActive(),
		t.UpdatedAt(),
		t.ID().String(),
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *TenantRepository) queryTenants(ctx context.Context, query string, args ...any) ([]*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*tenant.Tenant
	for rows.Next() {
		var m models.Tenant
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Domain,
			&m.Tier,
			&m.Status,
			&m.EndDate,
			&m.IsActive,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t, err := toDomainTenant(&m)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}
