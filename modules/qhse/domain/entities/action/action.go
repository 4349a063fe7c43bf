package action

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Action is a corrective or preventive action attached to a process.
type Action struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	processID  uuid.UUID
	title      string
	status     Status
	assigneeID uuid.UUID
	dueDate    *time.Time
	isActive   bool
	createdAt  time.Time
	updatedAt  time.Time
}

type Option func(*Action)

func WithID(id uuid.UUID) Option {
	return func(a *Action) {
		a.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(a *Action) {
		a.tenantID = tenantID
	}
}

func WithStatus(status Status) Option {
	return func(a *Action) {
		a.status = status
	}
}

func WithAssigneeID(assigneeID uuid.UUID) Option {
	return func(a *Action) {
		a.assigneeID = assigneeID
	}
}

func WithDueDate(dueDate *time.Time) Option {
	return func(a *Action) {
		a.dueDate = dueDate
	}
}

func WithIsActive(isActive bool) Option {
	return func(a *Action) {
		a.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(a *Action) {
		a.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(a *Action) {
		a.updatedAt = updatedAt
	}
}

func New(processID uuid.UUID, title string, opts ...Option) *Action {
	a := &Action{
		id:        uuid.New(),
		processID: processID,
		title:     title,
		status:    StatusOpen,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Action) ID() uuid.UUID {
	return a.id
}

func (a *Action) TenantID() uuid.UUID {
	return a.tenantID
}

func (a *Action) ProcessID() uuid.UUID {
	return a.processID
}

func (a *Action) Title() string {
	return a.title
}

func (a *Action) Status() Status {
	return a.status
}

func (a *Action) AssigneeID() uuid.UUID {
	return a.assigneeID
}

func (a *Action) DueDate() *time.Time {
	return a.dueDate
}

func (a *Action) IsActive() bool {
	return a.isActive
}

func (a *Action) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Action) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Action) SetStatus(status Status) {
	a.status = status
	a.updatedAt = time.Now()
}

func (a *Action) Retitle(title string) {
	a.title = title
	a.updatedAt = time.Now()
}

func (a *Action) Assign(assigneeID uuid.UUID) {
	a.assigneeID = assigneeID
	a.updatedAt = time.Now()
}

func (a *Action) SetDueDate(dueDate *time.Time) {
	a.dueDate = dueDate
	a.updatedAt = time.Now()
}
