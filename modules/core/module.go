package core

import (
	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/infrastructure/persistence"
	"github.com/qoveo/platform/modules/core/presentation/controllers"
	"github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	tenantRepo := persistence.NewTenantRepository()
	userRepo := persistence.NewUserRepository()
	usageRepo := persistence.NewUsageRepository()

	subscriptionService := services.NewSubscriptionService(
		tenantRepo,
		usageRepo,
		plan.DefaultCatalog(),
		app.EventBus(),
	)

	conf := configuration.Use()

	app.RegisterService(subscriptionService)
	app.RegisterService(services.NewTenantService(
		tenantRepo,
		app.EventBus(),
		services.WithTrialDays(conf.Subscription.TrialDays),
	))
	app.RegisterService(services.NewUserService(userRepo, subscriptionService))

	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewSubscriptionController(app),
		controllers.NewUserController(app),
	)
	return nil
}
