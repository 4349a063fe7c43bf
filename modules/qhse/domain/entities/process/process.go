package process

import (
	"time"

	"github.com/google/uuid"
)

// Process is an ISO 9001 process sheet: the unit the process quota meters.
type Process struct {
	id          uuid.UUID
	tenantID    uuid.UUID
	name        string
	description string
	pilotID     uuid.UUID
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

type Option func(*Process)

func WithID(id uuid.UUID) Option {
	return func(p *Process) {
		p.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(p *Process) {
		p.tenantID = tenantID
	}
}

func WithDescription(description string) Option {
	return func(p *Process) {
		p.description = description
	}
}

func WithPilotID(pilotID uuid.UUID) Option {
	return func(p *Process) {
		p.pilotID = pilotID
	}
}

func WithIsActive(isActive bool) Option {
	return func(p *Process) {
		p.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(p *Process) {
		p.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(p *Process) {
		p.updatedAt = updatedAt
	}
}

func New(name string, opts ...Option) *Process {
	p := &Process{
		id:        uuid.New(),
		name:      name,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Process) ID() uuid.UUID {
	return p.id
}

func (p *Process) TenantID() uuid.UUID {
	return p.tenantID
}

func (p *Process) Name() string {
	return p.name
}

func (p *Process) Description() string {
	return p.description
}

func (p *Process) PilotID() uuid.UUID {
	return p.pilotID
}

func (p *Process) IsActive() bool {
	return p.isActive
}

func (p *Process) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Process) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Process) Rename(name string) {
	p.name = name
	p.updatedAt = time.Now()
}

func (p *Process) SetDescription(description string) {
	p.description = description
	p.updatedAt = time.Now()
}

func (p *Process) AssignPilot(pilotID uuid.UUID) {
	p.pilotID = pilotID
	p.updatedAt = time.Now()
}
