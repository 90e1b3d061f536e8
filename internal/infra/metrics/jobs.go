package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(jobsCreatedTotal, jobsFinishedTotal) }

var jobsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "agent_jobs_created_total",
		Help: "Total number of agent jobs created, labeled by job type.",
	},
	[]string{"type"},
)

var jobsFinishedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "agent_jobs_finished_total",
		Help: "Total number of agent jobs finished, labeled by terminal status.",
	},
	[]string{"status"}, // 'complete', 'failed'
)

func IncJobCreated(jobType string) {
	jobsCreatedTotal.WithLabelValues(norm(jobType)).Inc()
}

func IncJobFinished(status string) {
	jobsFinishedTotal.WithLabelValues(norm(status)).Inc()
}
