package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/qoveo/platform/pkg/composables"
)

// User is a tenant member. Roles reuse the request-principal tags so the
// gate chain and persistence agree on the vocabulary.
type User struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	email     string
	firstName string
	lastName  string
	role      composables.Role
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*User)

func WithID(id uuid.UUID) Option {
	return func(u *User) {
		u.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(u *User) {
		u.tenantID = tenantID
	}
}

func WithRole(role composables.Role) Option {
	return func(u *User) {
		u.role = role
	}
}

func WithIsActive(isActive bool) Option {
	return func(u *User) {
		u.isActive = isActive
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(u *User) {
		u.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(u *User) {
		u.updatedAt = updatedAt
	}
}

func New(firstName, lastName, email string, opts ...Option) *User {
	u := &User{
		id:        uuid.New(),
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		role:      composables.RoleEmployee,
		isActive:  true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *User) ID() uuid.UUID {
	return u.id
}

func (u *User) TenantID() uuid.UUID {
	return u.tenantID
}

func (u *User) Email() string {
	return u.email
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) Role() composables.Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetRole(role composables.Role) {
	u.role = role
	u.updatedAt = time.Now()
}
