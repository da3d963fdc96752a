// Package metrics exposes prometheus metrics of the server and the workflow worker.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newtube_http_requests_total",
		Help: "Total number of handled HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newtube_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	rateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newtube_rate_limited_total",
		Help: "Number of requests denied by the rate limiter",
	}, []string{"route"})

	webhookEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newtube_webhook_events_total",
		Help: "Number of accepted webhook events",
	}, []string{"source", "type"})

	workflowRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newtube_workflow_runs_total",
		Help: "Number of workflow executions by outcome (done, retry, failed)",
	}, []string{"workflow", "outcome"})

	workflowStepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newtube_workflow_step_duration_seconds",
		Help:    "Duration of executed (not replayed) workflow steps",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"workflow", "step"})
)

// Middleware records count and latency of requests by route pattern.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			begin := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else if err != nil && status < 400 {
				status = 500
			}
			route := c.Path()
			if route == "" {
				route = "unknown"
			}
			method := c.Request().Method
			httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(begin).Seconds())
			return err
		}
	}
}

// Handler serves metrics in the prometheus exposition format.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func RateLimited(route string) {
	rateLimitedTotal.WithLabelValues(route).Inc()
}

func WebhookEvent(source string, typ string) {
	webhookEventsTotal.WithLabelValues(source, typ).Inc()
}

// WorkflowRun counts an execution of a workflow run.
//
// outcome is one of "done", "retry", "failed" or "lost" (reclaimed by another worker).
func WorkflowRun(workflow string, outcome string) {
	workflowRunsTotal.WithLabelValues(workflow, outcome).Inc()
}

func WorkflowStep(workflow string, step string, d time.Duration) {
	workflowStepDuration.WithLabelValues(workflow, step).Observe(d.Seconds())
}
