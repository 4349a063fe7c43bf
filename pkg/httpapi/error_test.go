package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{serrors.CodeUnauthorized, http.StatusUnauthorized},
		{serrors.CodeReadOnly, http.StatusForbidden},
		{serrors.CodeSuspended, http.StatusForbidden},
		{serrors.CodeMissingFeature, http.StatusForbidden},
		{serrors.CodeQuotaExceeded, http.StatusConflict},
		{serrors.CodeNotFound, http.StatusNotFound},
		{serrors.CodeInvalidInput, http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.status, httpapi.StatusFor(tc.code))
		})
	}
}

func TestWriteDomainError_KnownError(t *testing.T) {
	rec := httptest.NewRecorder()

	err := httpapi.WriteDomainError(rec, serrors.NewMissingFeature("AUDIT", "tier-1"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, serrors.CodeMissingFeature, envelope.Code)
	assert.Equal(t, "AUDIT", envelope.Meta["feature"])
	assert.Equal(t, "tier-1", envelope.Meta["plan"])
}

func TestWriteDomainError_UnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()

	err := httpapi.WriteDomainError(rec, errors.New("pq: connection refused"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
