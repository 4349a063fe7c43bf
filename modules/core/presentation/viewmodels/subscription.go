package viewmodels

import (
	"time"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/services"
)

type MetricUsage struct {
	Used  int64 `json:"used"`
	Limit int   `json:"limit"`
}

type Subscription struct {
	Plan               string                 `json:"plan"`
	PlanName           string                 `json:"planName"`
	Status             string                 `json:"status"`
	IsReadOnly         bool                   `json:"isReadOnly"`
	EndDate            string                 `json:"endDate,omitempty"`
	Usage              map[string]MetricUsage `json:"usage"`
	AvailableFeatures  []string               `json:"availableFeatures"`
	NextPlanSuggestion string                 `json:"nextPlanSuggestion,omitempty"`
}

func NewSubscription(details *services.SubscriptionDetails) *Subscription {
	usage := make(map[string]MetricUsage, len(details.Usage))
	for metric, u := range details.Usage {
		usage[string(metric)] = MetricUsage{Used: u.Used, Limit: u.Limit}
	}

	features := make([]string, 0, len(details.AvailableFeatures))
	for _, f := range details.AvailableFeatures {
		features = append(features, string(f))
	}

	vm := &Subscription{
		Plan:              string(details.CurrentPlan),
		PlanName:          details.PlanName,
		Status:            string(details.Status),
		IsReadOnly:        details.IsReadOnly,
		Usage:             usage,
		AvailableFeatures: features,
	}
	if details.EndDate != nil {
		vm.EndDate = details.EndDate.Format(time.RFC3339)
	}
	if details.NextPlanSuggestion != nil {
		vm.NextPlanSuggestion = string(*details.NextPlanSuggestion)
	}
	return vm
}

type Tenant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Domain    string `json:"domain,omitempty"`
	Tier      string `json:"tier"`
	Status    string `json:"status"`
	EndDate   string `json:"endDate,omitempty"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

type PlanDefinition struct {
	Tier     string         `json:"tier"`
	Name     string         `json:"name"`
	Limits   map[string]int `json:"limits"`
	Features []string       `json:"features"`
}

func NewPlanDefinition(tier plan.Tier, def plan.Definition) *PlanDefinition {
	limits := make(map[string]int, len(def.Limits))
	for metric, limit := range def.Limits {
		limits[string(metric)] = limit
	}
	features := make([]string, 0, len(def.Features))
	for _, f := range def.Features {
		features = append(features, string(f))
	}
	return &PlanDefinition{
		Tier:     string(tier),
		Name:     def.Name,
		Limits:   limits,
		Features: features,
	}
}
