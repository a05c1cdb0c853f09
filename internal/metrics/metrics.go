package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logship_records_read_total",
		Help: "The total number of records read from the input",
	}, []string{"source"})

	RecordsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logship_records_dropped_total",
		Help: "The total number of records dropped before delivery",
	}, []string{"reason"})

	RecordsShipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logship_records_shipped_total",
		Help: "The total number of records handed to a successful batch delivery",
	})

	BatchesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logship_batches_sent_total",
		Help: "The total number of batches delivered to the server",
	})

	BatchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logship_batches_failed_total",
		Help: "The total number of batches that failed to deliver",
	})

	SendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "logship_send_duration_seconds",
		Help:    "The duration of batch deliveries",
		Buckets: prometheus.DefBuckets,
	})
)
