package auth_test

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/lucas-ellwanger/newtube/pkg/auth"
	"github.com/lucas-ellwanger/newtube/pkg/utils/try"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	return try.To(jwt.NewWithClaims(method, claims).SignedString(key)).OrFatal(t)
}

func TestVerifier(t *testing.T) {
	testee := auth.HS256(
		secret,
		auth.WithIssuer("https://auth.example.com"),
		auth.WithTimeFunc(func() time.Time { return now }),
	)

	valid := jwt.RegisteredClaims{
		Subject:   "user_1",
		Issuer:    "https://auth.example.com",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}

	t.Run("it accepts a valid token", func(t *testing.T) {
		sub := try.To(testee.Verify(sign(t, jwt.SigningMethodHS256, secret, valid))).OrFatal(t)
		if sub != "user_1" {
			t.Errorf("unexpected subject: %s", sub)
		}
	})

	for name, when := range map[string]func() string{
		"expired": func() string {
			c := valid
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
			return sign(t, jwt.SigningMethodHS256, secret, c)
		},
		"without expiry": func() string {
			c := valid
			c.ExpiresAt = nil
			return sign(t, jwt.SigningMethodHS256, secret, c)
		},
		"from other issuer": func() string {
			c := valid
			c.Issuer = "https://evil.example.com"
			return sign(t, jwt.SigningMethodHS256, secret, c)
		},
		"signed by other key": func() string {
			return sign(t, jwt.SigningMethodHS256, []byte("another secret, another secret."), valid)
		},
		"with other algorithm": func() string {
			return sign(t, jwt.SigningMethodHS512, secret, valid)
		},
		"without subject": func() string {
			c := valid
			c.Subject = ""
			return sign(t, jwt.SigningMethodHS256, secret, c)
		},
		"malformed": func() string {
			return "not.a.token"
		},
	} {
		t.Run("it rejects a token "+name, func(t *testing.T) {
			if _, err := testee.Verify(when()); !errors.Is(err, auth.ErrInvalidToken) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
