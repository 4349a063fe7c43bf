package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/qoveo/platform/pkg/composables"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*User, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*User, error)
	Create(ctx context.Context, tenantID uuid.UUID, u *User) (*User, error)
	Update(ctx context.Context, tenantID uuid.UUID, u *User) (*User, error)
	Archive(ctx context.Context, id, tenantID uuid.UUID) error
	Restore(ctx context.Context, id, tenantID uuid.UUID) error
	CountByRole(ctx context.Context, tenantID uuid.UUID, role composables.Role) (int64, error)
}
