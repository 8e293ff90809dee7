// Package metrics defines the custom Prometheus metrics for the sales
// dashboard API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "salesdash"

// PredictionsTotal counts completed inferences.
// Label:
//   - label: the predicted label ("good" or "bad")
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of predictions served, by predicted label.",
	},
	[]string{"label"},
)

// SignupsTotal counts successfully created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsDeletedTotal counts completed account deletions.
var AccountsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_deleted_total",
		Help:      "Total number of accounts deleted together with their predictions.",
	},
)

// DatasetLoadsTotal counts sample dataset loads, idempotent no-ops included.
var DatasetLoadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_loads_total",
		Help:      "Total number of sample dataset load requests served.",
	},
)

// ModelsTrainedTotal counts completed training runs.
var ModelsTrainedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "models_trained_total",
		Help:      "Total number of models trained and persisted.",
	},
)

// ChartRenderDuration measures server-side chart rendering.
// Label:
//   - chart: the chart slot ("item_sales", "amount_distribution", "pie_chart")
var ChartRenderDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chart_render_duration_seconds",
		Help:      "Duration of rendering a single dashboard chart to PNG.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"chart"},
)
