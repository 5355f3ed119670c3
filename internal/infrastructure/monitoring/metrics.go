package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	CustomersCreatedTotal prometheus.Counter
	CreditsCreatedTotal   prometheus.Counter
	CreditsByStatus       *prometheus.GaugeVec
}

var Business = BusinessMetrics{
	CustomersCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_customers_created_total",
			Help: "Total number of customers created.",
		},
	),
	CreditsCreatedTotal: promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_engine_credits_created_total",
			Help: "Total number of credits created.",
		},
	),
	CreditsByStatus: promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "credit_engine_credits_by_status",
			Help: "Current number of credits per status, refreshed by the status report job.",
		},
		[]string{"status"},
	),
}
