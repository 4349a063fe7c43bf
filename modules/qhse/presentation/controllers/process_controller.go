package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/qoveo/platform/modules/qhse/presentation/controllers/dtos"
	"github.com/qoveo/platform/modules/qhse/presentation/viewmodels"
	"github.com/qoveo/platform/modules/qhse/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

type ProcessController struct {
	app      application.Application
	basePath string
}

func NewProcessController(app application.Application) application.Controller {
	return &ProcessController{
		app:      app,
		basePath: "/api/v1/processes",
	}
}

func (c *ProcessController) Key() string {
	return c.basePath
}

func (c *ProcessController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Archive).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/restore", c.Restore).Methods(http.MethodPost)
}

func tenantAndID(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	tenantID, err := composables.EffectiveTenantID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, serrors.NewUnauthorized("tenant could not be resolved")
	}
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		return tenantID, uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return tenantID, uuid.Nil, serrors.NewInvalidInput("malformed id")
	}
	return tenantID, id, nil
}

func (c *ProcessController) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	svc := application.Use[*services.ProcessService](c.app)
	items, err := svc.GetAll(r.Context(), tenantID, includeArchived)
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to list processes")
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewProcessList(items))
}

func (c *ProcessController) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.ProcessService](c.app)
	p, err := svc.GetByID(r.Context(), id, tenantID)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewProcess(p))
}

func (c *ProcessController) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, _, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	dto := &dtos.CreateProcessDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}

	svc := application.Use[*services.ProcessService](c.app)
	created, err := svc.Create(r.Context(), tenantID, dto.ToEntity())
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, viewmodels.NewProcess(created))
}

func (c *ProcessController) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	dto := &dtos.UpdateProcessDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}

	svc := application.Use[*services.ProcessService](c.app)
	p, err := svc.GetByID(r.Context(), id, tenantID)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	dto.Apply(p)

	updated, err := svc.Update(r.Context(), tenantID, p)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewProcess(updated))
}

func (c *ProcessController) Archive(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.ProcessService](c.app)
	if err := svc.Archive(r.Context(), id, tenantID); err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ProcessController) Restore(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.ProcessService](c.app)
	if err := svc.Restore(r.Context(), id, tenantID); err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseUUIDParam(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, serrors.NewInvalidInput("malformed id")
	}
	return id, nil
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeInvalidInput, "validation failed", fields)
}
