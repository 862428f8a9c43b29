package crowd

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsOnce sync.Once //nolint:gochecknoglobals

	// resolutions counts resolutions per mode and outcome.
	resolutions *prometheus.CounterVec //nolint:gochecknoglobals

	// syncDiagnostics counts group sync diagnostics per code, trace output excluded.
	syncDiagnostics *prometheus.CounterVec //nolint:gochecknoglobals
)

const outcomeError = "error"

func registerMetrics() {
	metricsOnce.Do(func() {
		resolutions = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crowd_resolutions_total",
				Help: "Number of crowd identity resolutions, differentiated by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		)

		syncDiagnostics = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crowd_group_sync_diagnostics_total",
				Help: "Number of crowd group synchronization problems, differentiated by code.",
			},
			[]string{"code"},
		)
	})
}
