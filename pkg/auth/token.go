// Package auth authenticates viewers.
//
// Viewers present a session token issued by the authentication provider,
// as "Authorization: Bearer <token>" header or "__session" cookie.
// The subject of the token is the external id of the user.
package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Verifier verifies session tokens.
type Verifier struct {
	alg      string
	key      any
	issuer   string
	leeway   time.Duration
	timeFunc func() time.Time
}

type VerifierOption func(*Verifier)

// WithIssuer requires tokens to have the "iss" claim.
func WithIssuer(iss string) VerifierOption {
	return func(v *Verifier) { v.issuer = iss }
}

// WithLeeway tolerates clock skew on "exp" and "nbf".
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.leeway = d }
}

// WithTimeFunc replaces the clock.
func WithTimeFunc(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.timeFunc = now }
}

// HS256 returns a Verifier for tokens signed by a shared secret.
func HS256(secret []byte, options ...VerifierOption) *Verifier {
	return newVerifier(jwt.SigningMethodHS256.Alg(), secret, options)
}

// RS256 returns a Verifier for tokens signed by the private key paired with pemKey.
func RS256(pemKey []byte, options ...VerifierOption) (*Verifier, error) {
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pemKey)
	if err != nil {
		return nil, fmt.Errorf("auth: public key is invalid: %w", err)
	}
	return newVerifier(jwt.SigningMethodRS256.Alg(), pub, options), nil
}

func newVerifier(alg string, key any, options []VerifierOption) *Verifier {
	v := &Verifier{alg: alg, key: key, leeway: 5 * time.Second, timeFunc: time.Now}
	for _, opt := range options {
		opt(v)
	}
	return v
}

// Verify checks the token and returns its subject.
//
// # Returns
//
// - string: "sub" claim
//
// - error: ErrInvalidToken (joined with the cause) when the token is not acceptable.
func (v *Verifier) Verify(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.alg}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.timeFunc),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(
		token, claims,
		func(*jwt.Token) (any, error) { return v.key, nil },
		opts...,
	); err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf(`%w: "sub" is empty`, ErrInvalidToken)
	}
	return claims.Subject, nil
}
