package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	pipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pixeld",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total pipeline runs by model and result",
		},
		[]string{"model", "result"},
	)

	pipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pixeld",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Duration of pipeline runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)
)

func init() {
	prometheus.MustRegister(pipelineRunsTotal, pipelineDuration)
}
