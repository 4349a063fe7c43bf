package tenant

import (
	"time"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
)

type UpgradedEvent struct {
	Tenant    *Tenant
	FromTier  plan.Tier
	ToTier    plan.Tier
	Months    int
	Timestamp time.Time
}

type SuspendedEvent struct {
	Tenant    *Tenant
	Timestamp time.Time
}

type ReactivatedEvent struct {
	Tenant    *Tenant
	Timestamp time.Time
}

type ExpiredEvent struct {
	Tenant    *Tenant
	Timestamp time.Time
}

type ProvisionedEvent struct {
	Tenant    *Tenant
	Timestamp time.Time
}

func NewUpgradedEvent(t *Tenant, from, to plan.Tier, months int) *UpgradedEvent {
	return &UpgradedEvent{Tenant: t, FromTier: from, ToTier: to, Months: months, Timestamp: time.Now()}
}

func NewSuspendedEvent(t *Tenant) *SuspendedEvent {
	return &SuspendedEvent{Tenant: t, Timestamp: time.Now()}
}

func NewReactivatedEvent(t *Tenant) *ReactivatedEvent {
	return &ReactivatedEvent{Tenant: t, Timestamp: time.Now()}
}

func NewExpiredEvent(t *Tenant) *ExpiredEvent {
	return &ExpiredEvent{Tenant: t, Timestamp: time.Now()}
}

func NewProvisionedEvent(t *Tenant) *ProvisionedEvent {
	return &ProvisionedEvent{Tenant: t, Timestamp: time.Now()}
}
