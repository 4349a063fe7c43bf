package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/metrics"
	"github.com/qoveo/platform/pkg/routing"
	"github.com/qoveo/platform/pkg/serrors"
)

// TokenClaims is the verified credential payload. Subject carries the user
// ID; tenant and role ride alongside so the gates never need a user lookup.
type TokenClaims struct {
	TenantID string `json:"tid"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func parseBearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func principalFromClaims(claims *TokenClaims) (*composables.Principal, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, err
	}
	role := composables.Role(claims.Role)
	if !role.Valid() {
		return nil, serrors.NewUnauthorized("unknown role on token")
	}

	p := &composables.Principal{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
	}
	// operator tokens have no home tenant
	if claims.TenantID != "" {
		tenantID, err := uuid.Parse(claims.TenantID)
		if err != nil {
			return nil, err
		}
		p.TenantID = tenantID
	}
	return p, nil
}

// Authorize verifies the Bearer token and installs the principal. Paths the
// manifest declares public pass through anonymously; everything else without
// a valid token gets 401 with the standard envelope.
func Authorize(secret string, classifier *routing.Classifier) mux.MiddlewareFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if classifier.IsPublic(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := parseBearer(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			claims := &TokenClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, keyFunc)
			if err != nil || !token.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			principal, err := principalFromClaims(claims)
			if err != nil {
				unauthorized(w, "malformed token claims")
				return
			}
			if !principal.IsOperator() && principal.TenantID == uuid.Nil {
				unauthorized(w, "token carries no tenant")
				return
			}

			ctx := composables.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	metrics.GateRejections.WithLabelValues("auth", serrors.CodeUnauthorized).Inc()
	_ = httpapi.WriteError(w, http.StatusUnauthorized, serrors.CodeUnauthorized, message, nil)
}

// RequireOperator guards platform-owner surfaces. It runs after Authorize,
// so a missing principal means an unauthenticated request.
func RequireOperator() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := composables.UsePrincipal(r.Context())
			if err != nil {
				unauthorized(w, "authentication required")
				return
			}
			if !principal.IsOperator() {
				// non-operators see 404, not 403
				_ = httpapi.WriteError(w, http.StatusNotFound, serrors.CodeNotFound, "not found", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
