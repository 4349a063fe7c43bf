package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/qoveo/platform/pkg/application"
	"github.com/qoveo/platform/pkg/httpapi"
)

// HealthController is the only deliberately public endpoint besides the
// plan catalog: load balancers hit it without credentials.
type HealthController struct {
	app application.Application
}

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if pool := c.app.Pool(); pool != nil {
		if err := pool.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			_ = httpapi.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, status)
}
