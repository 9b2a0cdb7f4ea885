package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daytrack_client",
			Name:      "store_requests_total",
			Help:      "Requests issued to the remote activity store.",
		},
		[]string{"operation"},
	)

	storeFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daytrack_client",
			Name:      "store_request_failures_total",
			Help:      "Store requests that ended in an error.",
		},
		[]string{"operation"},
	)
)

func observe(operation string, err error) {
	storeRequestsTotal.WithLabelValues(operation).Inc()
	if err != nil {
		storeFailuresTotal.WithLabelValues(operation).Inc()
	}
}
