package echoutil_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lucas-ellwanger/newtube/pkg/utils/echoutil"
)

func TestParseLevel(t *testing.T) {
	for when, then := range map[string]log.Lvl{
		"debug": log.DEBUG,
		"INFO":  log.INFO,
		"warn":  log.WARN,
		"":      log.WARN,
		"error": log.ERROR,
		"off":   log.OFF,
	} {
		got, err := echoutil.ParseLevel(when)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", when, err)
		}
		if got != then {
			t.Errorf("%s: got %v, want %v", when, got, then)
		}
	}

	if lvl, err := echoutil.ParseLevel("verbose"); err == nil || lvl != log.WARN {
		t.Errorf("unknown level: (%v, %v)", lvl, err)
	}
}

func TestLogHandlerFunc(t *testing.T) {
	for name, testcase := range map[string]struct {
		handler echo.HandlerFunc
		status  int
		logged  []string
	}{
		"response": {
			handler: func(c echo.Context) error { return c.NoContent(http.StatusTeapot) },
			status:  http.StatusTeapot,
			logged:  []string{"< GET /api/categories", "> GET /api/categories: status 418", "error = <nil>"},
		},
		"error is handled before logging": {
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound, "no video") },
			status:  http.StatusNotFound,
			logged:  []string{"> GET /api/categories: status 404", "no video"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			buf := new(bytes.Buffer)
			e.Logger.SetOutput(buf)
			echoutil.SetLevel(e, "debug")

			e.GET("/api/categories", echoutil.LogHandlerFunc(testcase.handler))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

			if rec.Code != testcase.status {
				t.Errorf("status: %d, want %d", rec.Code, testcase.status)
			}
			out := buf.String()
			for _, want := range testcase.logged {
				if !strings.Contains(out, want) {
					t.Errorf("%q is not logged:\n%s", want, out)
				}
			}
		})
	}
}
