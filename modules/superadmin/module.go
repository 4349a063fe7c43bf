package superadmin

import (
	"github.com/qoveo/platform/modules/superadmin/presentation/controllers"
	"github.com/qoveo/platform/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Name() string {
	return "superadmin"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterControllers(
		controllers.NewTenantConsoleController(app),
	)
	return nil
}
