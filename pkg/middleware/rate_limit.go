package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/qoveo/platform/pkg/configuration"
	"github.com/qoveo/platform/pkg/httpapi"
	"github.com/qoveo/platform/pkg/serrors"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// RateLimit throttles per client IP. The limit applies before
// authentication, so unauthenticated probes are bounded too.
func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	conf := configuration.Use()
	period := config.Period
	if period == 0 {
		period = time.Second
	}
	instance := limiter.New(config.Store, limiter.Rate{
		Period: period,
		Limit:  int64(config.RequestsPerPeriod),
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiterCtx, err := instance.Get(r.Context(), getRealIP(r, conf))
			if err != nil {
				_ = httpapi.WriteError(w, http.StatusInternalServerError, serrors.CodeInternal, "rate limiter failure", nil)
				return
			}
			if limiterCtx.Reached {
				_ = httpapi.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
