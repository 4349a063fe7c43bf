package server

import (
	"net/http"

	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteError(w, http.StatusNotFound, serrors.CodeNotFound, "resource not found", nil)
	})
}

func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteError(w, http.StatusMethodNotAllowed, serrors.CodeInvalidInput, "method not allowed", nil)
	})
}
