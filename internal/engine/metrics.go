package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cintel_refresh_total",
		Help: "Index rebuilds by result",
	}, []string{"result"})

	refreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cintel_refresh_duration_seconds",
		Help:    "Time spent loading a snapshot and rebuilding the indexes",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})

	indexNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cintel_index_nodes",
		Help: "Nodes per metric index in the current state",
	}, []string{"metric"})

	newsQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cintel_news_queue_depth",
		Help: "Items waiting in the news priority queue",
	})

	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cintel_queries_total",
		Help: "Queries served by operation",
	}, []string{"operation"})
)
