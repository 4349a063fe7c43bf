package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	coreviewmodels "github.com/qoveo/platform/modules/core/presentation/viewmodels"
	coreservices "github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/modules/superadmin/presentation/controllers/dtos"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/middleware"
	"github.com/qoveo/platform/pkg/serrors"
)

// TenantConsoleController is the operator surface: provisioning, lifecycle
// transitions and the manual expiry sweep. Every route sits behind
// RequireOperator.
type TenantConsoleController struct {
	app      application.Application
	basePath string
}

func NewTenantConsoleController(app application.Application) application.Controller {
	return &TenantConsoleController{
		app:      app,
		basePath: "/operator/tenants",
	}
}

func (c *TenantConsoleController) Key() string {
	return c.basePath
}

func (c *TenantConsoleController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireOperator())
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Provision).Methods(http.MethodPost)
	router.HandleFunc("/sweep", c.Sweep).Methods(http.MethodPost)
	router.HandleFunc("/{id}/suspend", c.Suspend).Methods(http.MethodPost)
	router.HandleFunc("/{id}/reactivate", c.Reactivate).Methods(http.MethodPost)
	router.HandleFunc("/{id}/subscription", c.Subscription).Methods(http.MethodGet)
}

func pathTenantID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, serrors.NewInvalidInput("malformed tenant id")
	}
	return id, nil
}

func (c *TenantConsoleController) List(w http.ResponseWriter, r *http.Request) {
	svc := application.Use[*coreservices.TenantService](c.app)
	tenants, err := svc.GetAll(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list tenants")
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, coreviewmodels.NewTenantList(tenants))
}

func (c *TenantConsoleController) Provision(w http.ResponseWriter, r *http.Request) {
	dto := &dtos.ProvisionTenantDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeInvalidInput, "validation failed", fields)
		return
	}

	svc := application.Use[*coreservices.TenantService](c.app)
	created, err := svc.Provision(r.Context(), dto.Name, dto.Domain)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, coreviewmodels.NewTenant(created))
}

func (c *TenantConsoleController) Suspend(w http.ResponseWriter, r *http.Request) {
	id, err := pathTenantID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*coreservices.SubscriptionService](c.app)
	suspended, err := svc.Suspend(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, coreviewmodels.NewTenant(suspended))
}

func (c *TenantConsoleController) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathTenantID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*coreservices.SubscriptionService](c.app)
	reactivated, err := svc.Reactivate(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, coreviewmodels.NewTenant(reactivated))
}

func (c *TenantConsoleController) Subscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathTenantID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*coreservices.SubscriptionService](c.app)
	details, err := svc.Details(r.Context(), id)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, coreviewmodels.NewSubscription(details))
}

// Sweep runs the expiry pass on demand, ahead of the scheduled run.
func (c *TenantConsoleController) Sweep(w http.ResponseWriter, r *http.Request) {
	svc := application.Use[*coreservices.SubscriptionService](c.app)
	swept, err := svc.SweepExpired(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("expiry sweep finished with errors")
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]int{"swept": swept})
}
