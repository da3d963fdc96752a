package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

var alice = domain.User{
	Id:         "6a1f0f3e-93f8-4c3e-9f55-1d1f8f4e0a01",
	ExternalId: "user_alice",
	Name:       "alice",
	ImageUrl:   "https://img.example.com/alice.png",
	CreatedAt:  now.Add(-48 * time.Hour),
	UpdatedAt:  now.Add(-48 * time.Hour),
}

var bob = domain.User{
	Id:         "6a1f0f3e-93f8-4c3e-9f55-1d1f8f4e0a02",
	ExternalId: "user_bob",
	Name:       "bob",
	CreatedAt:  now.Add(-24 * time.Hour),
	UpdatedAt:  now.Add(-24 * time.Hour),
}

const (
	videoId    = "0b7e0d55-2a2c-4c11-8a8e-6f4c1f0e0001"
	commentId  = "0b7e0d55-2a2c-4c11-8a8e-6f4c1f0e0002"
	playlistId = "0b7e0d55-2a2c-4c11-8a8e-6f4c1f0e0003"
	categoryId = "0b7e0d55-2a2c-4c11-8a8e-6f4c1f0e0004"
	runId      = "0b7e0d55-2a2c-4c11-8a8e-6f4c1f0e0005"
)

func signedIn(c echo.Context, u domain.User) echo.Context {
	auth.SetViewer(c, u)
	return c
}

// statusOf is the status code the handler responded with, or the code of the returned HTTP error.
func statusOf(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	var herr *echo.HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return herr.Code
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	v := new(T)
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return *v
}
