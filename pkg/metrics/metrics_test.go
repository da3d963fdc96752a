package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/videos/:videoId", func(c echo.Context) error {
		if c.Param("videoId") == "missing" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", Handler())

	route := "/api/videos/:videoId"
	okBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", route, "200"))
	ngBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", route, "404"))

	for _, id := range []string{"v1", "v2", "missing"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/videos/"+id, nil))
	}

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", route, "200")) - okBefore; got != 2 {
		t.Errorf("unexpected ok count: %v", got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", route, "404")) - ngBefore; got != 1 {
		t.Errorf("unexpected not found count: %v", got)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "newtube_http_requests_total") {
		t.Errorf("metrics are not exposed:\n%s", rec.Body.String())
	}
}

func TestWorkflowRun(t *testing.T) {
	before := testutil.ToFloat64(workflowRunsTotal.WithLabelValues("title", "done"))
	WorkflowRun("title", "done")
	if got := testutil.ToFloat64(workflowRunsTotal.WithLabelValues("title", "done")) - before; got != 1 {
		t.Errorf("unexpected count: %v", got)
	}
}
