package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by every lookup that misses, whatever the backing
// store.
var ErrNotFound = errors.New("tenant not found")

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*Tenant, error)
	GetAll(ctx context.Context) ([]*Tenant, error)
	// GetExpiredAsOf returns tenants whose end date has passed but whose
	// status has not been flipped to expired yet. Fed to the sweep.
	GetExpiredAsOf(ctx context.Context, now time.Time) ([]*Tenant, error)
	Create(ctx context.Context, t *Tenant) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) (*Tenant, error)
}
