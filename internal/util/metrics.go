package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_completed_total",
		Help: "Total number of completed sales",
	})

	SalesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_rejected_total",
		Help: "Total number of rejected sale attempts",
	}, []string{"reason"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders opened",
	})

	OrdersSettledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_settled_total",
		Help: "Total number of settlement payments applied",
	})

	OrdersPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_paid_total",
		Help: "Total number of orders fully paid and closed",
	})

	StockAdditionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_additions_total",
		Help: "Total number of restock operations",
	})

	DebtOutstanding = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "debt_outstanding_rwf",
		Help: "Total customer debt in RWF",
	})

	LowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "low_stock_products",
		Help: "Number of products at or below their low stock threshold",
	})

	AnalysisRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_analysis_requests_total",
		Help: "Total number of stock analysis requests",
	}, []string{"result"})

	AnalysisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stock_analysis_latency_seconds",
		Help:    "Latency of stock analysis calls",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
