package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/qoveo/platform/internal/server"
	"github.com/qoveo/platform/modules"
	coreservices "github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/configuration"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/metrics"
	"github.com/qoveo/platform/pkg/routing"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	rules, err := routing.LoadManifest(conf.RoutesManifestPath)
	if err != nil {
		log.Fatalf("failed to load routes manifest: %v", err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
		Classifier:    routing.NewClassifier(rules),
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go runExpirySweeper(
		sweepCtx,
		application.Use[*coreservices.SubscriptionService](app),
		pool,
		logger,
		conf.Subscription.SweepInterval,
	)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		stopSweep()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := serverInstance.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// runExpirySweeper periodically flips tenants whose paid period has lapsed
// to expired. Access checks already treat them as read only, the sweep just
// persists that state so listings and exports see it too.
func runExpirySweeper(
	ctx context.Context,
	subscriptions *coreservices.SubscriptionService,
	pool *pgxpool.Pool,
	logger *logrus.Logger,
	interval time.Duration,
) {
	if interval <= 0 {
		return
	}
	sweepLog := logger.WithField("component", "sweeper")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx := composables.WithPool(ctx, pool)
			swept, err := subscriptions.SweepExpired(runCtx)
			if err != nil {
				metrics.SweepRuns.WithLabelValues("error").Inc()
				sweepLog.WithError(err).Error("expiry sweep failed")
				continue
			}
			metrics.SweepRuns.WithLabelValues("ok").Inc()
			metrics.SweptTenants.Add(float64(swept))
			if swept > 0 {
				sweepLog.WithField("swept", swept).Info("expired subscriptions swept")
			}
		}
	}
}
