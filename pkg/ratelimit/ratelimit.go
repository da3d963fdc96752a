// Package ratelimit limits requests per viewer.
package ratelimit

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/metrics"
	"golang.org/x/time/rate"
)

type Config struct {
	// requests allowed per Window.
	Requests int
	Window   time.Duration

	// how long an idle viewer's limiter is kept.
	ExpiresIn time.Duration
}

func DefaultConfig() Config {
	return Config{Requests: 50, Window: 10 * time.Second, ExpiresIn: 3 * time.Minute}
}

// Limit is the refill rate of the token bucket: Requests per Window.
func (c Config) Limit() rate.Limit {
	if c.Requests <= 0 || c.Window <= 0 {
		return rate.Inf
	}
	return rate.Every(c.Window / time.Duration(c.Requests))
}

// Middleware denies requests with 429 when the viewer exceeds the limit.
//
// Viewers are identified by user id, or by the client IP for anonymous requests.
// It should be placed after auth.Middleware.
func Middleware(conf Config) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      conf.Limit(),
		Burst:     conf.Requests,
		ExpiresIn: conf.ExpiresIn,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if id := auth.ViewerId(c); id != nil {
				return "user:" + *id, nil
			}
			return "ip:" + c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apierr.InternalServerError(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RateLimited(c.Path())
			return apierr.TooManyRequests()
		},
	})
}
