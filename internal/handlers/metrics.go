package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	predictionsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "statsapi_predictions_served_total",
		Help: "Total number of prediction requests served, by category",
	}, []string{"category"})

	predictionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statsapi_prediction_cache_hits_total",
		Help: "Prediction responses served from the Redis cache",
	})

	predictionCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statsapi_prediction_cache_misses_total",
		Help: "Prediction requests that missed the Redis cache",
	})
)
