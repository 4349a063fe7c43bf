package qhse

import (
	coreservices "github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/modules/qhse/infrastructure/persistence"
	"github.com/qoveo/platform/modules/qhse/presentation/controllers"
	"github.com/qoveo/platform/modules/qhse/services"
	"github.com/qoveo/platform/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "qhse"
}

// Register wires the QHSE repositories and services. The core module must
// be registered first: the process quota rides on the subscription service.
func (m *Module) Register(app application.Application) error {
	processRepo := persistence.NewProcessRepository()
	actionRepo := persistence.NewActionRepository()

	subscriptions := application.Use[*coreservices.SubscriptionService](app)

	app.RegisterService(services.NewProcessService(processRepo, actionRepo, subscriptions, app.EventBus()))
	app.RegisterService(services.NewActionService(actionRepo, processRepo))

	app.RegisterControllers(
		controllers.NewProcessController(app),
		controllers.NewActionController(app),
	)
	return nil
}
