// Package metrics expone contadores Prometheus del servicio.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics colectores del servicio, registrados en un Registerer explícito.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	attachmentOps   *prometheus.CounterVec
	storageFailures *prometheus.CounterVec
}

// New registra los colectores en reg (prometheus.DefaultRegisterer en producción).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "identity_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		attachmentOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_attachment_operations_total",
			Help: "Attachment store operations by backend, operation and result",
		}, []string{"backend", "operation", "result"}),
		storageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "identity_attachment_cleanup_failures_total",
			Help: "Suppressed attachment deletions that failed during account update or delete",
		}, []string{"operation", "backend"}),
	}
}

// ObserveHTTPRequest registra una petición HTTP.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// AttachmentOperation cuenta una llamada al almacenamiento de adjuntos.
func (m *Metrics) AttachmentOperation(backend, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.attachmentOps.WithLabelValues(backend, operation, result).Inc()
}

// StorageFailure cuenta un fallo de limpieza suprimido.
func (m *Metrics) StorageFailure(operation, backend string) {
	m.storageFailures.WithLabelValues(operation, backend).Inc()
}
