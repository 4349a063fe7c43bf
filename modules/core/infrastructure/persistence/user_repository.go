package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qoveo/platform/modules/core/domain/entities/user"
	"github.com/qoveo/platform/modules/core/infrastructure/persistence/models"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/repo"
)

type UserRepository struct {
	scoped *repo.TenantScoped[*user.User]
}

func NewUserRepository() user.Repository {
	return &UserRepository{
		scoped: repo.NewTenantScoped(repo.Mapper[*user.User]{
			Table:   "users",
			Columns: []string{"email", "first_name", "last_name", "role"},
			ID:      func(u *user.User) uuid.UUID { return u.ID() },
			Args: func(u *user.User) []any {
				return []any{u.Email(), u.FirstName(), u.LastName(), string(u.Role())}
			},
			Scan: scanUser,
		}),
	}
}

func scanUser(rows pgx.Rows) (*user.User, error) {
	var m models.User
	if err := rows.Scan(
		&m.ID,
		&m.TenantID,
		&m.IsActive,
		&m.Email,
		&m.FirstName,
		&m.LastName,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainUser(&m)
}

// asDomainErr translates the generic scoped-repository sentinel into the
// user package's own.
func asDomainErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return user.ErrNotFound
	}
	return err
}

func (r *UserRepository) GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*user.User, error) {
	return r.scoped.FindAll(ctx, tenantID, includeArchived)
}

func (r *UserRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*user.User, error) {
	u, err := r.scoped.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, asDomainErr(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, tenantID uuid.UUID, u *user.User) (*user.User, error) {
	return r.scoped.Create(ctx, tenantID, u)
}

func (r *UserRepository) Update(ctx context.Context, tenantID uuid.UUID, u *user.User) (*user.User, error) {
	updated, err := r.scoped.Update(ctx, tenantID, u)
	if err != nil {
		return nil, asDomainErr(err)
	}
	return updated, nil
}

func (r *UserRepository) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	return asDomainErr(r.scoped.Archive(ctx, id, tenantID))
}

func (r *UserRepository) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	return asDomainErr(r.scoped.Restore(ctx, id, tenantID))
}

func (r *UserRepository) CountByRole(ctx context.Context, tenantID uuid.UUID, role composables.Role) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	err = tx.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND role = $2 AND is_active = true`,
		tenantID, string(role),
	).Scan(&count)
	return count, err
}
