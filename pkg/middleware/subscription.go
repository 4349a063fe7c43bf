package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/metrics"
	"github.com/qoveo/platform/pkg/routing"
	"github.com/qoveo/platform/pkg/serrors"
)

// AccessPolicy decides whether a tenant may perform reads or writes right
// now. The subscription service implements it.
type AccessPolicy interface {
	CheckAccess(ctx context.Context, tenantID uuid.UUID, isWrite bool) error
}

// FeaturePolicy decides whether a tenant's plan includes a feature tag.
type FeaturePolicy interface {
	CheckFeature(ctx context.Context, tenantID uuid.UUID, feature string) error
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// RequireSubscription gates every tenant request on subscription state.
// Operators and public routes skip it; everyone else is checked with the
// HTTP method deciding read versus write semantics.
func RequireSubscription(policy AccessPolicy, classifier *routing.Classifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if classifier.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := composables.UsePrincipal(r.Context())
			if err != nil {
				unauthorized(w, "authentication required")
				return
			}
			if principal.IsOperator() {
				next.ServeHTTP(w, r)
				return
			}

			if err := policy.CheckAccess(r.Context(), principal.TenantID, isWriteMethod(r.Method)); err != nil {
				metrics.GateRejections.WithLabelValues("subscription", serrors.CodeOf(err)).Inc()
				_ = httpapi.WriteDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeatureForRoute resolves the feature tag from the route manifest.
// Routes without a declared feature pass through; the manifest is the single
// place where URL subtrees map to plan features.
func RequireFeatureForRoute(policy FeaturePolicy, classifier *routing.Classifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if classifier.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			feature, ok := classifier.RequiredFeature(r.URL.Path)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := composables.UsePrincipal(r.Context())
			if err != nil {
				unauthorized(w, "authentication required")
				return
			}
			if principal.IsOperator() {
				next.ServeHTTP(w, r)
				return
			}

			if err := policy.CheckFeature(r.Context(), principal.TenantID, feature); err != nil {
				metrics.GateRejections.WithLabelValues("feature", serrors.CodeOf(err)).Inc()
				_ = httpapi.WriteDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature pins a single feature tag onto a subrouter, for routes the
// manifest does not cover.
func RequireFeature(policy FeaturePolicy, feature string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := composables.UsePrincipal(r.Context())
			if err != nil {
				unauthorized(w, "authentication required")
				return
			}
			if principal.IsOperator() {
				next.ServeHTTP(w, r)
				return
			}

			if err := policy.CheckFeature(r.Context(), principal.TenantID, feature); err != nil {
				metrics.GateRejections.WithLabelValues("feature", serrors.CodeOf(err)).Inc()
				_ = httpapi.WriteDomainError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
