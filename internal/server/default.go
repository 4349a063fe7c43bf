package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	coreservices "github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/configuration"
	"github.com/qoveo/platform/pkg/constants"
	"github.com/qoveo/platform/pkg/metrics"
	"github.com/qoveo/platform/pkg/middleware"
	"github.com/qoveo/platform/pkg/routing"
	"github.com/qoveo/platform/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
	Classifier    *routing.Classifier
}

// featureGate narrows the subscription service to the string-typed policy
// the middleware package expects.
type featureGate struct {
	svc *coreservices.SubscriptionService
}

func (g featureGate) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature string) error {
	return g.svc.CheckFeature(ctx, tenantID, plan.Feature(feature))
}

// Default assembles the middleware chain. Order matters: logging opens the
// span and recovers panics, the pool must precede anything that queries,
// and the three gates run authentication, subscription, feature, in that
// order.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration
	subscriptions := application.Use[*coreservices.SubscriptionService](app)

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.WithPool(options.Pool),
		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.Origin),
	}

	if conf.RateLimit.Enabled {
		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             middleware.NewMemoryStore(),
			}),
		)
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
		middleware.TracedMiddleware("authorize"),
		middleware.Authorize(conf.Auth.JWTSecret, options.Classifier),
		middleware.TracedMiddleware("subscriptionGate"),
		middleware.RequireSubscription(subscriptions, options.Classifier),
		middleware.TracedMiddleware("featureGate"),
		middleware.RequireFeatureForRoute(featureGate{svc: subscriptions}, options.Classifier),
	)

	app.RegisterMiddleware(middlewares...)

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	return server.NewHTTPServer(app, notFoundHandler(), methodNotAllowedHandler()), nil
}
