package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CartExports counts shopping cart PDF exports by outcome.
	CartExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_cart_exports_total",
		Help: "Total number of shopping cart PDF exports by outcome",
	}, []string{"outcome"})

	// PDFRenderSeconds records shopping list PDF rendering latency.
	PDFRenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forkful_pdf_render_seconds",
		Help:    "Shopping list PDF rendering latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// RecipeWrites counts recipe create/update/delete operations.
	RecipeWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_recipe_writes_total",
		Help: "Total number of recipe write operations by kind",
	}, []string{"kind"})
)
