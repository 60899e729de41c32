package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Penalty reasons.
const (
	PenaltyMismatch = "mismatch"
	PenaltyTimeout  = "timeout"
)

// Metrics counts what a session did. A nil registerer keeps the collectors
// unregistered, which is what tests use.
type Metrics struct {
	Interrupts prometheus.Counter
	Releases   prometheus.Counter
	Penalties  *prometheus.CounterVec
	Confirms   *prometheus.CounterVec
}

// NewMetrics creates the session collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Interrupts: factory.NewCounter(prometheus.CounterOpts{
			Name: "techsupport_interrupts_total",
			Help: "Modules interrupted by tech support",
		}),
		Releases: factory.NewCounter(prometheus.CounterOpts{
			Name: "techsupport_releases_total",
			Help: "Interrupted modules released after all three stages",
		}),
		Penalties: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "techsupport_penalties_total",
			Help: "Penalty signals sent to the host by reason",
		}, []string{"reason"}),
		Confirms: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "techsupport_confirms_total",
			Help: "Confirmed selections by stage and result",
		}, []string{"stage", "result"}),
	}
}
