package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/middleware"
	"github.com/qoveo/platform/pkg/serrors"
)

// stubAccessPolicy returns readErr for reads and writeErr for writes.
type stubAccessPolicy struct {
	readErr  error
	writeErr error
}

func (s *stubAccessPolicy) CheckAccess(_ context.Context, _ uuid.UUID, isWrite bool) error {
	if isWrite {
		return s.writeErr
	}
	return s.readErr
}

type stubFeaturePolicy struct {
	allowed map[string]bool
}

func (s *stubFeaturePolicy) CheckFeature(_ context.Context, _ uuid.UUID, feature string) error {
	if s.allowed[feature] {
		return nil
	}
	return serrors.NewMissingFeature(feature, "tier-1")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func requestAs(method, path string, p *composables.Principal) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if p != nil {
		req = req.WithContext(composables.WithPrincipal(context.Background(), p))
	}
	return req
}

func tenantPrincipal() *composables.Principal {
	return &composables.Principal{UserID: uuid.New(), TenantID: uuid.New(), Role: composables.RoleAdmin}
}

func operatorPrincipal() *composables.Principal {
	return &composables.Principal{UserID: uuid.New(), Role: composables.RoleOperator}
}

func TestRequireSubscription(t *testing.T) {
	classifier := testClassifier()

	t.Run("read-only tenant can still read", func(t *testing.T) {
		policy := &stubAccessPolicy{writeErr: serrors.NewReadOnly("tier-1")}
		handler := middleware.RequireSubscription(policy, classifier)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/processes", tenantPrincipal()))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("read-only tenant cannot write", func(t *testing.T) {
		policy := &stubAccessPolicy{writeErr: serrors.NewReadOnly("tier-1")}
		handler := middleware.RequireSubscription(policy, classifier)(okHandler())

		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestAs(method, "/api/v1/processes", tenantPrincipal()))
			assert.Equal(t, http.StatusForbidden, rec.Code, method)
			assert.Equal(t, serrors.CodeReadOnly, decodeEnvelope(t, rec).Code, method)
		}
	})

	t.Run("suspended tenant is blocked on reads too", func(t *testing.T) {
		policy := &stubAccessPolicy{
			readErr:  serrors.NewSuspended(),
			writeErr: serrors.NewSuspended(),
		}
		handler := middleware.RequireSubscription(policy, classifier)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/processes", tenantPrincipal()))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, serrors.CodeSuspended, decodeEnvelope(t, rec).Code)
	})

	t.Run("operator bypasses the gate", func(t *testing.T) {
		policy := &stubAccessPolicy{
			readErr:  serrors.NewSuspended(),
			writeErr: serrors.NewSuspended(),
		}
		handler := middleware.RequireSubscription(policy, classifier)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodDelete, "/api/v1/processes", operatorPrincipal()))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("public route skips the gate", func(t *testing.T) {
		policy := &stubAccessPolicy{readErr: serrors.NewSuspended()}
		handler := middleware.RequireSubscription(policy, classifier)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("no principal on private route", func(t *testing.T) {
		handler := middleware.RequireSubscription(&stubAccessPolicy{}, classifier)(okHandler())

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/processes", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireFeatureForRoute(t *testing.T) {
	classifier := testClassifier()
	policy := &stubFeaturePolicy{allowed: map[string]bool{"NC": true}}
	handler := middleware.RequireFeatureForRoute(policy, classifier)(okHandler())

	t.Run("route without declared feature passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/processes", tenantPrincipal()))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing feature is a distinct forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/audits", tenantPrincipal()))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, serrors.CodeMissingFeature, envelope.Code)
		assert.Equal(t, "AUDIT", envelope.Meta["feature"])
		assert.Equal(t, "tier-1", envelope.Meta["plan"])
	})

	t.Run("operator bypasses feature checks", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/audits", operatorPrincipal()))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequireFeature(t *testing.T) {
	policy := &stubFeaturePolicy{allowed: map[string]bool{"NC": true}}

	t.Run("allowed", func(t *testing.T) {
		handler := middleware.RequireFeature(policy, "NC")(okHandler())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/nonconformities", tenantPrincipal()))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("denied", func(t *testing.T) {
		handler := middleware.RequireFeature(policy, "RISKS")(okHandler())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestAs(http.MethodGet, "/api/v1/risks", tenantPrincipal()))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
