package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChannelsLoaded tracks the size of the editing session
	ChannelsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "m3u_editor_channels",
		Help: "Number of channels in the editing session",
	})

	// ChannelsSelected tracks the size of the current selection
	ChannelsSelected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "m3u_editor_channels_selected",
		Help: "Number of selected channels",
	})

	// RecordsImported counts channels parsed from imported playlists
	RecordsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_records_imported_total",
		Help: "Total number of channels parsed from imported playlists",
	})

	// RecordsDropped counts #EXTINF markers that never produced a channel
	RecordsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_records_dropped_total",
		Help: "Total number of playlist entries dropped while parsing",
	})

	// Operations counts editor operations by name and result
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "m3u_editor_operations_total",
		Help: "Total number of editor operations",
	}, []string{"operation", "result"})

	// StorageErrors counts failed playlist repository calls
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "m3u_editor_storage_errors_total",
		Help: "Total number of playlist storage failures",
	}, []string{"operation"})

	// HealthCheckFailures tracks health check failures
	HealthCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "m3u_editor_health_check_failures_total",
		Help: "Total number of health check failures",
	})
)

// RecordOperation counts one editor operation as "ok" or "error".
func RecordOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	Operations.WithLabelValues(operation, result).Inc()
}

// SetSessionSize updates the session gauges.
func SetSessionSize(channels, selected int) {
	ChannelsLoaded.Set(float64(channels))
	ChannelsSelected.Set(float64(selected))
}

// RecordImport counts parsed and dropped entries of one import.
func RecordImport(channels, dropped int) {
	RecordsImported.Add(float64(channels))
	RecordsDropped.Add(float64(dropped))
}

// RecordStorageError increments the storage failure counter for an operation
func RecordStorageError(operation string) {
	StorageErrors.WithLabelValues(operation).Inc()
}

// RecordHealthCheckFailure increments the health check failure counter
func RecordHealthCheckFailure() {
	HealthCheckFailures.Inc()
}
