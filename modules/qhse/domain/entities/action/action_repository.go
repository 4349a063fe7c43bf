package action

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("action not found")

type Repository interface {
	GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*Action, error)
	GetByProcess(ctx context.Context, processID, tenantID uuid.UUID) ([]*Action, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Action, error)
	Create(ctx context.Context, tenantID uuid.UUID, a *Action) (*Action, error)
	Update(ctx context.Context, tenantID uuid.UUID, a *Action) (*Action, error)
	Archive(ctx context.Context, id, tenantID uuid.UUID) error
	Restore(ctx context.Context, id, tenantID uuid.UUID) error
	ArchiveByProcess(ctx context.Context, processID, tenantID uuid.UUID) error
}
