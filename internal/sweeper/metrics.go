package sweeper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_sweep_runs_total",
		Help: "Number of completed sweep runs.",
	})
	cartsAbandoned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_sweep_abandoned_total",
		Help: "Number of carts marked abandoned by the sweep.",
	})
	cartsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_sweep_purged_total",
		Help: "Number of abandoned carts purged by the sweep.",
	})
	sweepFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_sweep_failures_total",
		Help: "Number of per-cart failures skipped during sweep runs.",
	})
)
