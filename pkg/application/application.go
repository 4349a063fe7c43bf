package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/qoveo/platform/pkg/eventbus"
)

// Controller is a routable unit. Key must be stable and unique; registering
// a controller with an existing key replaces it.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module is a deployable feature bundle. Register wires its repositories,
// services and controllers into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application aggregates what modules contribute at startup: controllers,
// the shared middleware chain, the database pool and the event bus.
type Application interface {
	Pool() *pgxpool.Pool
	EventBus() eventbus.EventBus
	Logger() *logrus.Logger

	Controllers() []Controller
	RegisterControllers(controllers ...Controller)

	Middleware() []mux.MiddlewareFunc
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)

	RegisterService(service any)
	Service(typ reflect.Type) (any, bool)
}

// Use resolves a registered service by its concrete type. Modules register
// services during startup, so a miss is a wiring bug and panics.
func Use[T any](app Application) T {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	svc, ok := app.Service(typ)
	if !ok {
		panic(fmt.Sprintf("application: service %s is not registered", typ))
	}
	return svc.(T)
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	controllers map[string]Controller
	order       []string
	middleware  []mux.MiddlewareFunc
	services    map[reflect.Type]any
}

func (a *application) Pool() *pgxpool.Pool {
	return a.pool
}

func (a *application) EventBus() eventbus.EventBus {
	return a.eventBus
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) Controllers() []Controller {
	out := make([]Controller, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.controllers[key])
	}
	return out
}

func (a *application) RegisterControllers(controllers ...Controller) {
	if a.controllers == nil {
		a.controllers = make(map[string]Controller)
	}
	for _, c := range controllers {
		if _, exists := a.controllers[c.Key()]; !exists {
			a.order = append(a.order, c.Key())
		}
		a.controllers[c.Key()] = c
	}
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) RegisterService(service any) {
	if a.services == nil {
		a.services = make(map[reflect.Type]any)
	}
	a.services[reflect.TypeOf(service)] = service
}

func (a *application) Service(typ reflect.Type) (any, bool) {
	for registered, svc := range a.services {
		if registered == typ || (typ.Kind() == reflect.Interface && registered.Implements(typ)) {
			return svc, true
		}
	}
	return nil, false
}
