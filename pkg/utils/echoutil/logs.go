package echoutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LogHandlerFunc logs each request and its response.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		started := time.Now()
		c.Logger().Debugf("< %s %s (from %s)", req.Method, req.URL.Path, c.RealIP())

		err := next(c)
		if err != nil {
			// let echo's error handler fill the response before logging its status.
			c.Error(err)
		}
		res := c.Response()
		c.Logger().Infof(
			"> %s %s: status %d, %d bytes in %v / error = %v",
			req.Method, req.URL.Path, res.Status, res.Size, time.Since(started), err,
		)
		return nil
	}
}

// ParseLevel converts names (debug, info, warn, error, off) to gommon log levels.
//
// Empty string means warn.
func ParseLevel(loglevel string) (log.Lvl, error) {
	switch strings.ToLower(loglevel) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn", "":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return log.WARN, fmt.Errorf("unknown loglevel: %s", loglevel)
	}
}

// SetLevel sets the level of echo's logger. Unknown levels fall back to warn.
func SetLevel(e *echo.Echo, loglevel string) {
	lvl, err := ParseLevel(loglevel)
	e.Logger.SetLevel(lvl)
	if err != nil {
		e.Logger.Warnf("%s . fall-backed to warn", err)
	}
}
