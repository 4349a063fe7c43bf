package main

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/infrastructure/persistence"
	"github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/configuration"
	"github.com/qoveo/platform/pkg/eventbus"
)

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	conf := configuration.Use()
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
	if err != nil {
		return nil, errors.Wrap(err, "db connect failed")
	}
	return pool, nil
}

// newSubscriptionService wires the service stack the same way the server
// does, minus the HTTP layer.
func newSubscriptionService() *services.SubscriptionService {
	publisher := eventbus.NewEventPublisher(configuration.Use().Logger())
	return services.NewSubscriptionService(
		persistence.NewTenantRepository(),
		persistence.NewUsageRepository(),
		plan.DefaultCatalog(),
		publisher,
	)
}

func newTenantService() *services.TenantService {
	conf := configuration.Use()
	publisher := eventbus.NewEventPublisher(conf.Logger())
	return services.NewTenantService(
		persistence.NewTenantRepository(),
		publisher,
		services.WithTrialDays(conf.Subscription.TrialDays),
	)
}

func poolContext(ctx context.Context, pool *pgxpool.Pool) context.Context {
	return composables.WithPool(ctx, pool)
}
