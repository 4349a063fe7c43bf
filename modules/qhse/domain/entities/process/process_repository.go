package process

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("process not found")

type Repository interface {
	GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*Process, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Process, error)
	Create(ctx context.Context, tenantID uuid.UUID, p *Process) (*Process, error)
	Update(ctx context.Context, tenantID uuid.UUID, p *Process) (*Process, error)
	Archive(ctx context.Context, id, tenantID uuid.UUID) error
	Restore(ctx context.Context, id, tenantID uuid.UUID) error
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
