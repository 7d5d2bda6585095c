package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(jobsSubmittedTotal, downloadFailuresTotal, tasksSweptTotal) }

var jobsSubmittedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobs_submitted_total",
		Help: "Jobs accepted by the generation service, labeled by action.",
	},
	[]string{"action"},
)

var downloadFailuresTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "artifact_download_failures_total",
		Help: "Failed downloads of finished-job artifacts.",
	},
)

var tasksSweptTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "tasks_swept_total",
		Help: "Pending tasks abandoned by the stale-task sweeper.",
	},
)

func IncJobSubmitted(action string) {
	jobsSubmittedTotal.WithLabelValues(norm(action)).Inc()
}

func IncDownloadFailure() { downloadFailuresTotal.Inc() }

func IncTaskSwept() { tasksSweptTotal.Inc() }
