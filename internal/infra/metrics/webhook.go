package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(webhookNotificationsTotal, pendingTasks) }

var webhookNotificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_notifications_total",
		Help: "Inbound webhook notifications, labeled by status ('done', 'error', 'progress', 'unknown', 'malformed').",
	},
	[]string{"status"},
)

var pendingTasks = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "pending_tasks",
		Help: "Number of jobs currently awaiting a terminal notification.",
	},
)

func IncWebhookNotification(status string) {
	webhookNotificationsTotal.WithLabelValues(norm(status)).Inc()
}

func SetPendingTasks(n int) {
	pendingTasks.Set(float64(n))
}
