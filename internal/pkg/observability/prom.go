package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "owlbackend"
)

var (
	// SkippedRatings counts rating entries dropped during aggregation.
	// reason is one of: not_an_object, unknown_label, invalid_score.
	SkippedRatings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "performance", "skipped_ratings_total"),
		Help: "Rating entries skipped during performance aggregation",
	}, []string{"modality", "reason"})

	PerformanceCalcDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "performance", "calc_duration_seconds"),
		Help:    "Duration of performance report calculation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"filtered"})

	SubmissionConsumeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "submission", "consume_duration_seconds"),
		Help:    "Duration of submission consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})

	SubmissionConsumeMessagingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "submission", "consume_messaging_latency_seconds"),
		Help:    "Messaging latency of submission consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})

	WorkerCalcDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last worker calculation in seconds",
	}, []string{"service"})
)
