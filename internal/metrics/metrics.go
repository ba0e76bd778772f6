package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "anonquery", Name: "queries_created_total", Help: "Queries created by students",
	})
	QueriesAnswered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "anonquery", Name: "queries_answered_total", Help: "Queries answered by teachers",
	})
	AnswerConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "anonquery", Name: "answer_conflicts_total", Help: "Answer attempts rejected because the query was already answered",
	})
	NotificationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "anonquery", Name: "notifications_created_total", Help: "Notifications created for answered queries",
	})
	NotificationsBackfilled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "anonquery", Name: "notifications_backfilled_total", Help: "Notifications recovered by the backfill sweep",
	})
	QueriesModerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "anonquery", Name: "queries_moderated_total", Help: "Question submissions blocked by content moderation",
	})
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "anonquery", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(QueriesCreated, QueriesAnswered, AnswerConflicts, NotificationsCreated, NotificationsBackfilled, QueriesModerated, RequestDuration)
}

// Handler returns the /metrics endpoint handler
func Handler() http.Handler { return promhttp.Handler() }
