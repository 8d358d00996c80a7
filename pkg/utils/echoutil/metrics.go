package echoutil

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts and times requests per route and status.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "requests served, by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "request latency, by method and route",
			},
			[]string{"method", "route"},
		),
	}
}

// Middleware records each request after it is served.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		timer := prometheus.NewTimer(m.duration.WithLabelValues(
			c.Request().Method, c.Path(),
		))
		err := next(c)
		timer.ObserveDuration()

		status := c.Response().Status
		if httperr, ok := err.(*echo.HTTPError); ok {
			status = httperr.Code
		}
		m.requests.WithLabelValues(
			c.Request().Method, c.Path(), strconv.Itoa(status),
		).Inc()
		return err
	}
}

// Handler exposes the default prometheus registry.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
