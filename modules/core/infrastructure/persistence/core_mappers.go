package persistence

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/modules/core/domain/entities/user"
	"github.com/qoveo/platform/modules/core/infrastructure/persistence/models"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/mapping"
)

func toDomainTenant(m *models.Tenant) (*tenant.Tenant, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tenant id")
	}
	return tenant.New(
		m.Name,
		tenant.WithID(id),
		tenant.WithDomain(mapping.SQLNullStringToValue(m.Domain)),
		tenant.WithTier(plan.Tier(m.Tier)),
		tenant.WithStatus(tenant.Status(m.Status)),
		tenant.WithEndDate(mapping.SQLNullTimeToPointer(m.EndDate)),
		tenant.WithIsActive(m.IsActive),
		tenant.WithCreatedAt(m.CreatedAt),
		tenant.WithUpdatedAt(m.UpdatedAt),
	), nil
}

func toDomainUser(m *models.User) (*user.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user id")
	}
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user tenant id")
	}
	return user.New(
		m.FirstName,
		m.LastName,
		m.Email,
		user.WithID(id),
		user.WithTenantID(tenantID),
		user.WithRole(composables.Role(m.Role)),
		user.WithIsActive(m.IsActive),
		user.WithCreatedAt(m.CreatedAt),
		user.WithUpdatedAt(m.UpdatedAt),
	), nil
}
