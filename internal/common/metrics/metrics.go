// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ScreeningsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screenings_completed_total",
			Help: "Total number of applicant screenings completed",
		},
		[]string{"recommendation"},
	)

	ScreeningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screening_duration_seconds",
			Help:    "Duration of applicant screening in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScreeningConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screening_confidence",
			Help:    "Confidence of screening decisions",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 9),
		},
	)

	VerificationsUnavailable = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verifications_unavailable_total",
			Help: "Total number of verification sources that were unavailable",
		},
		[]string{"source"},
	)
)
