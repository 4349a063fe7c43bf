package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/qoveo/platform/pkg/serrors"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// StatusFor maps a domain error code to its HTTP status. The Forbidden
// variants stay distinct from Unauthorized so clients can branch to an
// upgrade prompt instead of a login prompt.
func StatusFor(code string) int {
	switch code {
	case serrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case serrors.CodeReadOnly, serrors.CodeSuspended, serrors.CodeMissingFeature:
		return http.StatusForbidden
	case serrors.CodeQuotaExceeded:
		return http.StatusConflict
	case serrors.CodeNotFound:
		return http.StatusNotFound
	case serrors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError renders any error through the taxonomy. Errors outside it
// surface as an opaque 500 without leaking internals.
func WriteDomainError(w http.ResponseWriter, err error) error {
	var base *serrors.BaseError
	if !errors.As(err, &base) {
		return WriteError(w, http.StatusInternalServerError, serrors.CodeInternal, "internal error", nil)
	}
	return WriteError(w, StatusFor(base.Code), base.Code, base.Message, base.Meta)
}
