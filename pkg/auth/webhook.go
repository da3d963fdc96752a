package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSignature = errors.New("invalid signature")

// Headers of webhook requests from the authentication provider.
const (
	HeaderWebhookId        = "svix-id"
	HeaderWebhookTimestamp = "svix-timestamp"
	HeaderWebhookSignature = "svix-signature"
)

// WebhookVerifier checks signatures of user synchronization webhooks.
//
// The signature is "v1,<base64(hmac-sha256(secret, id + "." + timestamp + "." + body))>".
// The header may carry multiple signatures separated by spaces; one match is enough.
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

type WebhookOption func(*WebhookVerifier)

// WithTolerance sets how old (or how far in the future) timestamps may be.
func WithTolerance(d time.Duration) WebhookOption {
	return func(w *WebhookVerifier) { w.tolerance = d }
}

// WithClock replaces the clock.
func WithClock(now func() time.Time) WebhookOption {
	return func(w *WebhookVerifier) { w.now = now }
}

// NewWebhookVerifier parses a signing secret "whsec_<base64>".
func NewWebhookVerifier(secret string, options ...WebhookOption) (*WebhookVerifier, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return nil, fmt.Errorf("auth: webhook secret is malformed: %w", err)
	}
	w := &WebhookVerifier{secret: key, tolerance: 5 * time.Minute, now: time.Now}
	for _, opt := range options {
		opt(w)
	}
	return w, nil
}

// Sign computes the signature header value for the message.
func (w *WebhookVerifier) Sign(id string, timestamp time.Time, body []byte) string {
	mac := hmac.New(sha256.New, w.secret)
	fmt.Fprintf(mac, "%s.%d.", id, timestamp.Unix())
	mac.Write(body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks headers of a webhook request against its body.
func (w *WebhookVerifier) Verify(header http.Header, body []byte) error {
	id := header.Get(HeaderWebhookId)
	ts := header.Get(HeaderWebhookTimestamp)
	sigs := header.Get(HeaderWebhookSignature)
	if id == "" || ts == "" || sigs == "" {
		return fmt.Errorf("%w: missing headers", ErrInvalidSignature)
	}

	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp: %s", ErrInvalidSignature, ts)
	}
	timestamp := time.Unix(sec, 0)
	if d := w.now().Sub(timestamp).Abs(); w.tolerance < d {
		return fmt.Errorf("%w: timestamp is out of tolerance", ErrInvalidSignature)
	}

	expected := w.Sign(id, timestamp, body)
	for _, s := range strings.Fields(sigs) {
		if hmac.Equal([]byte(s), []byte(expected)) {
			return nil
		}
	}
	return fmt.Errorf("%w: no signatures match", ErrInvalidSignature)
}
