package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the bots. Each
// transport runs as its own process with its own /metrics endpoint, so
// there is no transport label.
type Metrics struct {
	Messages       *prometheus.CounterVec
	Bookings       *prometheus.CounterVec
	LLMRequests    *prometheus.CounterVec
	PlatformErrors prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Messages: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Handled inbound messages by decision path.",
		}, []string{"path"}),
		Bookings: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking execution attempts by outcome.",
		}, []string{"outcome"}),
		LLMRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM completion calls by mode and outcome.",
		}, []string{"mode", "outcome"}),
		PlatformErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "platform_errors_total",
			Help:      "Errors returned by the booking platform API.",
		}),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
