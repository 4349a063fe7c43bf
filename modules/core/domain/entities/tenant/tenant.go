package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
)

// Status is the subscription lifecycle state.
//
//	trial --(payment confirmed)--> active
//	active --(end date passes, sweep)--> expired
//	expired --(upgrade/renew)--> active
//	any --(manual suspend)--> suspended
//	suspended --(manual reactivate)--> active
//
// No state is terminal. The isActive flag is a separate hard lock: it forces
// read-only regardless of status, and is used for out-of-band suspensions.
type Status string

const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTrial, StatusActive, StatusExpired, StatusSuspended:
		return true
	}
	return false
}

type Tenant struct {
	id        uuid.UUID
	name      string
	domain    string
	tier      plan.Tier
	status    Status
	endDate   *time.Time
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Tenant)

func WithID(id uuid.UUID) Option {
	return func(t *Tenant) {
		t.id = id
	}
}

func WithDomain(domain string) Option {
	return func(t *Tenant) {
		t.domain = domain
	}
}

func WithTier(tier plan.Tier) Option {
	return func(t *Tenant) {
		t.tier = tier
	}
}

func WithStatus(status Status) Option {
	return func(t *Tenant) {
		t.status = status
	}
}

func WithEndDate(endDate *time.Time) Option {
	return func(t *Tenant) {
		t.endDate = endDate
	}
}

func WithIsActive(isActive bool) Option {
	return func(t *Tenant) {
		t.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(t *Tenant) {
		t.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(t *Tenant) {
		t.updatedAt = updatedAt
	}
}

// New provisions a tenant in its initial lifecycle state: a 14-day trial,
// active, on the trial tier. Options may override any of it.
func New(name string, opts ...Option) *Tenant {
	endDate := time.Now().AddDate(0, 0, 14)
	t := &Tenant{
		id:        uuid.New(),
		name:      name,
		tier:      plan.TierTrial,
		status:    StatusTrial,
		endDate:   &endDate,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tenant) ID() uuid.UUID {
	return t.id
}

func (t *Tenant) Name() string {
	return t.name
}

func (t *Tenant) Domain() string {
	return t.domain
}

func (t *Tenant) Tier() plan.Tier {
	return t.tier
}

func (t *Tenant) Status() Status {
	return t.status
}

func (t *Tenant) EndDate() *time.Time {
	return t.endDate
}

func (t *Tenant) IsActive() bool {
	return t.isActive
}

func (t *Tenant) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Tenant) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsExpiredAt evaluates expiry lazily against the given clock, so a tenant
// whose end date passed is treated as expired even before the sweep flips
// its status. A cleared isActive flag expires the tenant unconditionally.
func (t *Tenant) IsExpiredAt(now time.Time) bool {
	if !t.isActive {
		return true
	}
	return t.endDate != nil && t.endDate.Before(now)
}

// IsSuspended blocks all access, reads included.
func (t *Tenant) IsSuspended() bool {
	return t.status == StatusSuspended
}

// Upgrade moves the tenant onto a paid tier. The end date is reset to
// now + months, not extended, so repeated calls are not cumulative. Payment
// validation happens upstream; this is the trusted write path.
func (t *Tenant) Upgrade(tier plan.Tier, months int, now time.Time) {
	endDate := now.AddDate(0, months, 0)
	t.tier = tier
	t.status = StatusActive
	t.endDate = &endDate
	t.isActive = true
	t.updatedAt = now
}

// Suspend is the manual out-of-band lock: both the status and the hard lock
// flag flip, matching how provisioning tooling has historically used them.
func (t *Tenant) Suspend(now time.Time) {
	t.status = StatusSuspended
	t.isActive = false
	t.updatedAt = now
}

func (t *Tenant) Reactivate(now time.Time) {
	t.status = StatusActive
	t.isActive = true
	t.updatedAt = now
}

// MarkExpired is the sweep's state assignment. It is a pure assignment, so
// re-applying it on a later run is harmless.
func (t *Tenant) MarkExpired(now time.Time) {
	t.status = StatusExpired
	t.isActive = false
	t.updatedAt = now
}
