package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/qoveo/platform/modules/core/presentation/controllers/dtos"
	"github.com/qoveo/platform/modules/core/presentation/viewmodels"
	"github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

type UserController struct {
	app      application.Application
	basePath string
}

func NewUserController(app application.Application) application.Controller {
	return &UserController{
		app:      app,
		basePath: "/api/v1/users",
	}
}

func (c *UserController) Key() string {
	return c.basePath
}

func (c *UserController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}/role", c.ChangeRole).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Archive).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/restore", c.Restore).Methods(http.MethodPost)
}

func resolveTenantAndID(r *http.Request) (uuid.UUID, uuid.UUID, error) {
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

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	tenantID, _, err := resolveTenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	svc := application.Use[*services.UserService](c.app)
	users, err := svc.GetAll(r.Context(), tenantID, includeArchived)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewUserList(users))
}

func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := resolveTenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.UserService](c.app)
	u, err := svc.GetByID(r.Context(), id, tenantID)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewUser(u))
}

func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, _, err := resolveTenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	dto := &dtos.CreateUserDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeInvalidInput, "validation failed", fields)
		return
	}

	svc := application.Use[*services.UserService](c.app)
	created, err := svc.Create(r.Context(), tenantID, dto.ToEntity())
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusCreated, viewmodels.NewUser(created))
}

func (c *UserController) ChangeRole(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := resolveTenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	dto := &dtos.ChangeUserRoleDTO{}
	if err := json.NewDecoder(r.Body).Decode(dto); err != nil {
		_ = httpapi.WriteDomainError(w, serrors.NewInvalidInput("malformed JSON body"))
		return
	}
	if fields, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, serrors.CodeInvalidInput, "validation failed", fields)
		return
	}

	svc := application.Use[*services.UserService](c.app)
	updated, err := svc.ChangeRole(r.Context(), id, tenantID, composables.Role(dto.Role))
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, viewmodels.NewUser(updated))
}

func (c *UserController) Archive(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := resolveTenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.UserService](c.app)
	if err := svc.Archive(r.Context(), id, tenantID); err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *UserController) Restore(w http.ResponseWriter, r *http.Request) {
	tenantID, id, err := resolveTenantAndID(r)
	if err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}

	svc := application.Use[*services.UserService](c.app)
	if err := svc.Restore(r.Context(), id, tenantID); err != nil {
		_ = httpapi.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
