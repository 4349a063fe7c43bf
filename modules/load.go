package modules

import (
	"github.com/qoveo/platform/modules/core"
	"github.com/qoveo/platform/modules/qhse"
	"github.com/qoveo/platform/modules/superadmin"
	"github.com/qoveo/platform/pkg/application"
)

// BuiltInModules in registration order. Core must come first: the other
// modules resolve its services during their own registration.
var BuiltInModules = []application.Module{
	core.NewModule(),
	qhse.NewModule(),
	superadmin.NewModule(),
}

func Load(app application.Application, extra ...application.Module) error {
	for _, module := range append(BuiltInModules, extra...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
