package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qoveo/platform/modules/qhse/presentation/controllers/dtos"
	"github.com/qoveo/platform/modules/qhse/presentation/viewmodels"
	"github.com/qoveo/platform/modules/qhse/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

type ActionController struct {
	app      application.Application
	basePath string
}

func NewActionController(app application.Application) application.Controller {
	return &ActionController{
		app:      app,
		basePath: "/api/v1/actions",
	}
}

func (c *ActionController) Key() string {
	return c.basePath
}

func (c *ActionController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Archive).Methods(http.MethodDelete)
}

func (c *ActionController) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.ActionService](c.app)
	if raw := r.URL.Query().Get("processId"); raw != "" {
		processID, err := parseUUIDParam(raw)
		if err != nil {
			_ = httpapi.WriteDomainError(w, err)
			return
		}
		items, err := svc.GetByProcess(r.Context(), processID, tenantID)
		if err != nil {
			_ = httpapi.WriteDomainError(w, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewActionList(items))
		return
	}

	includeArchived := r.URL.Query().Get("includeArchived") == "true"
	items, err := svc.GetAll(r.Context(), tenantID, includeArchived)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewActionList(items))
}

func (c *ActionController) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.ActionService](c.app)
	a, err := svc.GetByID(r.Context(), id, tenantID)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewAction(a))
}

func (c *ActionController) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, _, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	dto := &dtos.CreateActionDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}

	svc := application.Use[*services.ActionService](c.app)
	created, err := svc.Create(r.Context(), tenantID, dto.ToEntity())
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, viewmodels.NewAction(created))
}

func (c *ActionController) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	dto := &dtos.UpdateActionDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		writeValidationError(w, fields)
		return
	}

	svc := application.Use[*services.ActionService](c.app)
	a, err := svc.GetByID(r.Context(), id, tenantID)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	dto.Apply(a)

	updated, err := svc.Update(r.Context(), tenantID, a)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewAction(updated))
}

func (c *ActionController) Archive(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := tenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.ActionService](c.app)
	if err := svc.Archive(r.Context(), id, tenantID); err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
