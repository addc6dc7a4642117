package runtime

import "github.com/prometheus/client_golang/prometheus"

// Metrics are this port's home for the teacher's monitoring dependency
// (pkg/bubbly/monitoring's Prometheus integration) — two process-wide
// collectors tracking render-effect activity and live component count, a
// much smaller surface than the teacher's full per-composable metrics
// package, scoped to what runtime.Instance itself can observe without a
// separate monitoring layer.
var (
	renderEffectRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loom_render_effect_runs_total",
		Help: "Total number of times a component's render effect has run (initial mount and subsequent updates).",
	})
	mountedInstances = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loom_mounted_instances",
		Help: "Number of component instances currently mounted.",
	})
)

// RegisterMetrics registers loom's Prometheus collectors against reg — an
// application opts into this explicitly (e.g. with
// prometheus.DefaultRegisterer) rather than loom registering itself on
// package init, so embedding loom in a host process never fights over
// the default registry.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{renderEffectRuns, mountedInstances} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
