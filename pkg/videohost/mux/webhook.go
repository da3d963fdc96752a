package mux

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const SignatureHeader = "Mux-Signature"

var ErrInvalidSignature = errors.New("mux: invalid webhook signature")

// Event types handled by the application.
const (
	AssetCreated    = "video.asset.created"
	AssetReady      = "video.asset.ready"
	AssetErrored    = "video.asset.errored"
	AssetDeleted    = "video.asset.deleted"
	AssetTrackReady = "video.asset.track.ready"
)

// Event is a webhook notification. Data is decoded per Type.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AssetData is the payload of video.asset.* events.
type AssetData = Asset

// TrackData is the payload of video.asset.track.* events.
type TrackData struct {
	Id      string `json:"id"`
	AssetId string `json:"asset_id"`
	Status  string `json:"status"`
	Type    string `json:"type"`
}

func ParseEvent(body []byte) (Event, error) {
	ev := Event{}
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, err
	}
	if ev.Type == "" {
		return Event{}, errors.New("mux: event without type")
	}
	return ev, nil
}

func (ev Event) Asset() (AssetData, error) {
	a := AssetData{}
	if err := json.Unmarshal(ev.Data, &a); err != nil {
		return AssetData{}, err
	}
	return a, nil
}

func (ev Event) Track() (TrackData, error) {
	t := TrackData{}
	if err := json.Unmarshal(ev.Data, &t); err != nil {
		return TrackData{}, err
	}
	return t, nil
}

// WebhookVerifier checks Mux-Signature headers.
type WebhookVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

type WebhookOption func(*WebhookVerifier)

func WithTolerance(d time.Duration) WebhookOption {
	return func(w *WebhookVerifier) { w.tolerance = d }
}

func WithClock(now func() time.Time) WebhookOption {
	return func(w *WebhookVerifier) { w.now = now }
}

func NewWebhookVerifier(secret string, options ...WebhookOption) *WebhookVerifier {
	w := &WebhookVerifier{
		secret:    []byte(secret),
		tolerance: 5 * time.Minute,
		now:       time.Now,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Sign returns a header value for body sent at t.
func (w *WebhookVerifier) Sign(t time.Time, body []byte) string {
	ts := strconv.FormatInt(t.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", ts, w.mac(ts, body))
}

func (w *WebhookVerifier) mac(ts string, body []byte) string {
	h := hmac.New(sha256.New, w.secret)
	h.Write([]byte(ts))
	h.Write([]byte("."))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks the signature header against body.
//
// The header looks like `t=<unix seconds>,v1=<hex>`; v1 may be repeated.
// Signatures older (or newer) than the tolerance are rejected.
func (w *WebhookVerifier) Verify(header http.Header, body []byte) error {
	value := header.Get(SignatureHeader)
	if value == "" {
		return fmt.Errorf("%w: no %s header", ErrInvalidSignature, SignatureHeader)
	}

	ts := ""
	sigs := []string{}
	for _, part := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return fmt.Errorf("%w: malformed header", ErrInvalidSignature)
	}

	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed timestamp: %w", ErrInvalidSignature, err)
	}
	skew := w.now().Sub(time.Unix(sec, 0))
	if skew < 0 {
		skew = -skew
	}
	if w.tolerance < skew {
		return fmt.Errorf("%w: timestamp out of tolerance", ErrInvalidSignature)
	}

	expected := []byte(w.mac(ts, body))
	for _, s := range sigs {
		if hmac.Equal(expected, []byte(s)) {
			return nil
		}
	}
	return ErrInvalidSignature
}
