package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GateRejections counts requests stopped by the gate chain, labelled by
// stage (auth, subscription, feature) and error code.
var GateRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "qoveo",
		Subsystem: "gates",
		Name:      "rejections_total",
		Help:      "Requests rejected by the access gate chain.",
	},
	[]string{"stage", "code"},
)

// SweepRuns tracks subscription expiry sweeps.
var SweepRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "qoveo",
		Subsystem: "subscriptions",
		Name:      "sweep_runs_total",
		Help:      "Expiry sweep executions by outcome.",
	},
	[]string{"outcome"},
)

// SweptTenants counts tenants flipped to expired by the sweeper.
var SweptTenants = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "qoveo",
		Subsystem: "subscriptions",
		Name:      "swept_tenants_total",
		Help:      "Tenants marked expired by the sweep.",
	},
)
