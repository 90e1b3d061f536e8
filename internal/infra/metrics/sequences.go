package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(sequenceTriggersTotal, dripStepsTotal) }

var sequenceTriggersTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sequence_triggers_total",
		Help: "Sequence trigger outcomes (triggered/failed).",
	},
	[]string{"outcome"},
)

var dripStepsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "drip_steps_processed_total",
		Help: "Total drip steps processed across all sequences.",
	},
)

func IncSequenceTrigger(outcome string) {
	sequenceTriggersTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddDripSteps(n int) {
	dripStepsTotal.Add(float64(n))
}
