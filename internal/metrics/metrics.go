// Package metrics exposes prometheus counters for item mutations alongside the
// per-route instrumentation provided by ginprom.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ItemCreated  prometheus.Counter
	ItemReplaced prometheus.Counter
	ItemDeleted  prometheus.Counter
}

func New() Metrics {
	return Metrics{
		ItemCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "newsd",
			Name:      "news_item_created_total",
			Help:      "Number of news items created",
		}),
		ItemReplaced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "newsd",
			Name:      "news_item_replaced_total",
			Help:      "Number of news items replaced",
		}),
		ItemDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "newsd",
			Name:      "news_item_deleted_total",
			Help:      "Number of news items deleted",
		}),
	}
}

type metricsHandler struct{}

// NewHandler registers the prometheus scrape endpoint.
func NewHandler(engine *gin.Engine) {
	handler := metricsHandler{}
	engine.GET("/metrics", handler.prometheusHandler())
}

func (h metricsHandler) prometheusHandler() gin.HandlerFunc {
	handler := promhttp.Handler()

	return func(ctx *gin.Context) {
		handler.ServeHTTP(ctx.Writer, ctx.Request)
	}
}
