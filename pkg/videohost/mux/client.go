// Package mux talks to the video host: direct uploads, assets, captions and webhooks.
package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lucas-ellwanger/newtube/pkg/utils/retry"
)

var (
	ErrNotFound = errors.New("mux: not found")

	// the response is not what is expected.
	ErrUnexpectedResponse = errors.New("mux: unexpected response")
)

const (
	DefaultAPIRoot    = "https://api.mux.com"
	DefaultImageRoot  = "https://image.mux.com"
	DefaultStreamRoot = "https://stream.mux.com"
)

type Config struct {
	TokenId     string
	TokenSecret string

	// origin allowed to PUT files to direct upload URLs.
	CORSOrigin string

	APIRoot    string
	ImageRoot  string
	StreamRoot string
}

type Client struct {
	conf   Config
	client *http.Client
	retry  retry.Policy
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.client = c }
}

// WithRetry sets how requests failing with 429 or 5xx are retried.
func WithRetry(p retry.Policy) Option {
	return func(cl *Client) { cl.retry = p }
}

func New(conf Config, options ...Option) *Client {
	if conf.APIRoot == "" {
		conf.APIRoot = DefaultAPIRoot
	}
	if conf.ImageRoot == "" {
		conf.ImageRoot = DefaultImageRoot
	}
	if conf.StreamRoot == "" {
		conf.StreamRoot = DefaultStreamRoot
	}
	if conf.CORSOrigin == "" {
		conf.CORSOrigin = "*"
	}
	c := &Client{
		conf:   conf,
		client: &http.Client{Timeout: 30 * time.Second},
		retry:  retry.Policy{Initial: 500 * time.Millisecond, Multiplier: 2, Max: 5 * time.Second, Attempts: 3},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Upload is a direct upload URL issued for a video.
type Upload struct {
	Id  string `json:"id"`
	Url string `json:"url"`
}

type PlaybackId struct {
	Id     string `json:"id"`
	Policy string `json:"policy"`
}

type Track struct {
	Id           string `json:"id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	LanguageCode string `json:"language_code"`
}

type Asset struct {
	Id          string       `json:"id"`
	Status      string       `json:"status"`
	UploadId    string       `json:"upload_id"`
	Passthrough string       `json:"passthrough"`
	PlaybackIds []PlaybackId `json:"playback_ids"`
	Tracks      []Track      `json:"tracks"`

	// seconds
	Duration float64 `json:"duration"`
}

// PlaybackId returns the first playback id, if any.
func (a Asset) PlaybackId() (string, bool) {
	if len(a.PlaybackIds) == 0 {
		return "", false
	}
	return a.PlaybackIds[0].Id, true
}

// TextTrack returns the first text track, if any.
func (a Asset) TextTrack() (Track, bool) {
	for _, t := range a.Tracks {
		if t.Type == "text" {
			return t, true
		}
	}
	return Track{}, false
}

// DurationMillis is Duration in milliseconds.
func (a Asset) DurationMillis() int64 {
	return int64(a.Duration * 1000)
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (c *Client) do(ctx context.Context, method string, u string, body any, authorize bool) ([]byte, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = b
	}

	return retry.Blocking(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if authorize {
			req.SetBasicAuth(c.conf.TokenId, c.conf.TokenSecret)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		switch {
		case 200 <= resp.StatusCode && resp.StatusCode < 300:
			return respBody, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, u)
		case resp.StatusCode == http.StatusTooManyRequests || 500 <= resp.StatusCode:
			return nil, fmt.Errorf("%w: %s %s: status %d", retry.ErrRetry, method, u, resp.StatusCode)
		default:
			return nil, fmt.Errorf(
				"%w: %s %s: status %d: %s",
				ErrUnexpectedResponse, method, u, resp.StatusCode, string(respBody),
			)
		}
	})
}

func (c *Client) api(path ...string) string {
	u, err := url.JoinPath(c.conf.APIRoot, path...)
	if err != nil {
		return c.conf.APIRoot
	}
	return u
}

// CreateUpload issues a direct upload URL.
//
// The asset made from the upload carries passthrough, is played publicly, and
// gets English subtitles generated.
func (c *Client) CreateUpload(ctx context.Context, passthrough string) (Upload, error) {
	req := map[string]any{
		"cors_origin": c.conf.CORSOrigin,
		"new_asset_settings": map[string]any{
			"passthrough":     passthrough,
			"playback_policy": []string{"public"},
			"input": []map[string]any{
				{
					"generated_subtitles": []map[string]string{
						{"language_code": "en", "name": "English"},
					},
				},
			},
		},
	}
	b, err := c.do(ctx, http.MethodPost, c.api("video/v1/uploads"), req, true)
	if err != nil {
		return Upload{}, err
	}
	env := envelope[Upload]{}
	if err := json.Unmarshal(b, &env); err != nil {
		return Upload{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return env.Data, nil
}

// CancelUpload cancels the direct upload, so no assets are made from it.
// Cancelling missing uploads is not an error.
func (c *Client) CancelUpload(ctx context.Context, uploadId string) error {
	_, err := c.do(ctx, http.MethodPut, c.api("video/v1/uploads", uploadId, "cancel"), nil, true)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) GetAsset(ctx context.Context, assetId string) (Asset, error) {
	b, err := c.do(ctx, http.MethodGet, c.api("video/v1/assets", assetId), nil, true)
	if err != nil {
		return Asset{}, err
	}
	env := envelope[Asset]{}
	if err := json.Unmarshal(b, &env); err != nil {
		return Asset{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	return env.Data, nil
}

// DeleteAsset removes the asset. Deleting missing assets is not an error.
func (c *Client) DeleteAsset(ctx context.Context, assetId string) error {
	_, err := c.do(ctx, http.MethodDelete, c.api("video/v1/assets", assetId), nil, true)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// Transcript downloads the text track of the video as plain text.
func (c *Client) Transcript(ctx context.Context, playbackId string, trackId string) (string, error) {
	u, err := url.JoinPath(c.conf.StreamRoot, playbackId, "text", trackId+".txt")
	if err != nil {
		return "", err
	}
	b, err := c.do(ctx, http.MethodGet, u, nil, false)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ThumbnailUrl is the URL of the still image generated for the playback.
func (c *Client) ThumbnailUrl(playbackId string) string {
	u, _ := url.JoinPath(c.conf.ImageRoot, playbackId, "thumbnail.jpg")
	return u
}

// PreviewUrl is the URL of the animated preview generated for the playback.
func (c *Client) PreviewUrl(playbackId string) string {
	u, _ := url.JoinPath(c.conf.ImageRoot, playbackId, "animated.gif")
	return u
}

// Interface is the part of Client the application depends on.
type Interface interface {
	CreateUpload(ctx context.Context, passthrough string) (Upload, error)
	CancelUpload(ctx context.Context, uploadId string) error
	GetAsset(ctx context.Context, assetId string) (Asset, error)
	DeleteAsset(ctx context.Context, assetId string) error
	Transcript(ctx context.Context, playbackId string, trackId string) (string, error)
	ThumbnailUrl(playbackId string) string
	PreviewUrl(playbackId string) string
}

var _ Interface = &Client{}
