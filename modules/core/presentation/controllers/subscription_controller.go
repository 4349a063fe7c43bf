package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/presentation/controllers/dtos"
	"github.com/qoveo/platform/modules/core/presentation/viewmodels"
	"github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

// SubscriptionController serves the tenant-facing subscription surface:
// current plan, usage against quotas, and the plan catalog.
type SubscriptionController struct {
	app      application.Application
	basePath string
}

func NewSubscriptionController(app application.Application) application.Controller {
	return &SubscriptionController{
		app:      app,
		basePath: "/api/v1/subscription",
	}
}

func (c *SubscriptionController) Key() string {
	return c.basePath
}

func (c *SubscriptionController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.Details).Methods(http.MethodGet)
	router.HandleFunc("/plans", c.Plans).Methods(http.MethodGet)
	router.HandleFunc("/upgrade", c.Upgrade).Methods(http.MethodPost)
}

func (c *SubscriptionController) Details(w http.ResponseWriter, r *http.Request) {
	tenantID, err := composables.EffectiveTenantID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewUnauthorized("tenant could not be resolved"))
		return
	}

	svc := application.Use[*services.SubscriptionService](c.app)
	details, err := svc.Details(r.Context(), tenantID)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewSubscription(details))
}

func (c *SubscriptionController) Plans(w http.ResponseWriter, r *http.Request) {
	catalog := plan.DefaultCatalog()
	out := make([]*viewmodels.PlanDefinition, 0)
	for _, tier := range catalog.Tiers() {
		def, ok := catalog.Definition(tier)
		if !ok {
			continue
		}
		out = append(out, viewmodels.NewPlanDefinition(tier, def))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, out)
}

// Upgrade is operator-only: plan changes follow payment confirmation, which
// arrives through the operator console, never from the tenant itself.
func (c *SubscriptionController) Upgrade(w http.ResponseWriter, r *http.Request) {
	principal, err := composables.UsePrincipal(r.Context())
	if err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewUnauthorized("authentication required"))
		return
	}
	if !principal.IsOperator() {
		_ = httpapi.WriteError(w, http.StatusNotFound, serrors.CodeNotFound, "not found", nil)
		return
	}

	tenantID, err := composables.EffectiveTenantID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("X-Tenant-Id header is required"))
		return
	}
	if tenantID == uuid.Nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("X-Tenant-Id header is required"))
		return
	}

	dto := &dtos.UpgradeSubscriptionDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeInvalidInput, "validation failed", fields)
		return
	}

	svc := application.Use[*services.SubscriptionService](c.app)
	upgraded, err := svc.Upgrade(r.Context(), tenantID, plan.Tier(dto.Tier), dto.Months)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewTenant(upgraded))
}
