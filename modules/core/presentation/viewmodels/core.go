package viewmodels

import (
	"time"

	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/modules/core/domain/entities/user"
)

func NewTenant(t *tenant.Tenant) *Tenant {
	vm := &Tenant{
		ID:        t.ID().String(),
		Name:      t.Name(),
		Domain:    t.Domain(),
		Tier:      string(t.Tier()),
		Status:    string(t.Status()),
		IsActive:  t.IsActive(),
		CreatedAt: t.CreatedAt().Format(time.RFC3339),
	}
	if t.EndDate() != nil {
		vm.EndDate = t.EndDate().Format(time.RFC3339)
	}
	return vm
}

func NewTenantList(items []*tenant.Tenant) []*Tenant {
	out := make([]*Tenant, 0, len(items))
	for _, t := range items {
		out = append(out, NewTenant(t))
	}
	return out
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func NewUser(u *user.User) *User {
	return &User{
		ID:        u.ID().String(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      string(u.Role()),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt().Format(time.RFC3339),
	}
}

func NewUserList(items []*user.User) []*User {
	out := make([]*User, 0, len(items))
	for _, u := range items {
		out = append(out, NewUser(u))
	}
	return out
}
