package shell

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	commands    *prometheus.CounterVec
	completions prometheus.Counter
	duration    prometheus.Histogram
}

// newMetrics builds the session collectors. They are only registered
// when the config supplies a Registerer; unregistered collectors still
// count, they just are not scraped.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "squires_commands_total",
			Help: "Commands dispatched, by status.",
		}, []string{"status"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squires_completions_total",
			Help: "Completion queries served.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "squires_command_duration_seconds",
			Help:    "Command dispatch latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.commands, m.completions, m.duration)
	}
	return m
}

func (m *metrics) observeCommand(err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.commands.WithLabelValues(status).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *metrics) observeCompletion() {
	m.completions.Inc()
}
