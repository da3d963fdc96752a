package ratelimit_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httptestutil "github.com/lucas-ellwanger/newtube/internal/testutils/http"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
	"github.com/lucas-ellwanger/newtube/pkg/ratelimit"
	"golang.org/x/time/rate"
)

func TestConfig_Limit(t *testing.T) {
	if got := ratelimit.DefaultConfig().Limit(); got != rate.Limit(5) {
		t.Errorf("50 req / 10s should be 5 req/s, but %v", got)
	}
	if got := (ratelimit.Config{}).Limit(); got != rate.Inf {
		t.Errorf("zero config should be unlimited, but %v", got)
	}
}

func TestMiddleware(t *testing.T) {
	conf := ratelimit.Config{Requests: 3, Window: time.Hour, ExpiresIn: time.Minute}
	limited := ratelimit.Middleware(conf)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	call := func(userId string) int {
		e := echo.New()
		c, rec := httptestutil.Post(e, "/api/videos", nil)
		if userId != "" {
			auth.SetViewer(c, domain.User{Id: userId})
		}
		err := limited(c)
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code
		} else if err != nil {
			t.Fatal(err)
		}
		return rec.Code
	}

	for range 3 {
		if code := call("alice"); code != http.StatusNoContent {
			t.Fatalf("request within the limit is denied: %d", code)
		}
	}
	if code := call("alice"); code != http.StatusTooManyRequests {
		t.Errorf("request over the limit is accepted: %d", code)
	}
	if code := call("bob"); code != http.StatusNoContent {
		t.Errorf("limit is shared between users: %d", code)
	}
}
