package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	apierr "github.com/lucas-ellwanger/newtube/pkg/api/types/errors"
	domerr "github.com/lucas-ellwanger/newtube/pkg/domain/errors"
)

func TestFromDomain(t *testing.T) {
	for name, testcase := range map[string]struct {
		when error
		then int
	}{
		"missing":          {when: fmt.Errorf("video: %w", domerr.ErrMissing), then: http.StatusNotFound},
		"conflict":         {when: domerr.ErrConflict, then: http.StatusConflict},
		"invalid argument": {when: domerr.ErrInvalidArgument, then: http.StatusBadRequest},
		"reply to reply":   {when: domerr.ErrReplyToReply, then: http.StatusBadRequest},
		"self subscription": {
			when: domerr.ErrSelfSubscription, then: http.StatusBadRequest,
		},
		"others": {when: errors.New("fake error"), then: http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			got := apierr.FromDomain(testcase.when)
			if got.Code != testcase.then {
				t.Errorf("code: %d, want %d", got.Code, testcase.then)
			}
			if testcase.then != http.StatusNotFound && !errors.Is(got, testcase.when) {
				t.Errorf("cause is lost: %v", got)
			}
		})
	}

	t.Run("nil", func(t *testing.T) {
		if got := apierr.FromDomain(nil); got != nil {
			t.Errorf("unexpected error: %v", got)
		}
	})
}

func TestNewErrorMessage_Response(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cause := errors.New("connection refused")
	e.DefaultHTTPErrorHandler(apierr.ServiceUnavailable("retry later", cause), c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code: %d", rec.Code)
	}
	want := `{"message":{"reason":"service unavailable temporarily","advice":"retry later"}}` + "\n"
	if got := rec.Body.String(); got != want {
		t.Errorf("body:\n- got : %s- want: %s", got, want)
	}
}
