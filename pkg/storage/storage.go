// Package storage keeps media files (thumbnails and previews) in an S3 compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lucas-ellwanger/newtube/pkg/domain"
)

var ErrDownload = errors.New("storage: cannot download the source")

// Interface stores media files.
type Interface interface {
	// Put uploads body as key, and returns where it is served.
	Put(ctx context.Context, key string, contentType string, body []byte) (domain.Media, error)

	// PutFromUrl copies the file at src into the bucket as key.
	PutFromUrl(ctx context.Context, key string, src string) (domain.Media, error)

	// Delete removes the object. Deleting missing objects is not an error.
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Bucket string
	Region string

	// custom endpoint for S3 compatible services. Empty to use AWS.
	Endpoint string

	// static credential. When empty, the default credential chain is used.
	AccessKeyId     string
	SecretAccessKey string

	// base URL where objects are served publicly, like "https://cdn.example.com".
	PublicUrl string
}

// ObjectAPI is the part of *s3.Client used by Bucket.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Bucket struct {
	api       ObjectAPI
	bucket    string
	publicUrl string
	http      *http.Client
}

var _ Interface = &Bucket{}

// New connects the bucket described in conf.
func New(ctx context.Context, conf Config) (*Bucket, error) {
	opts := []func(*config.LoadOptions) error{}
	if conf.Region != "" {
		opts = append(opts, config.WithRegion(conf.Region))
	}
	if conf.AccessKeyId != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyId, conf.SecretAccessKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithAPI(client, conf.Bucket, conf.PublicUrl), nil
}

func NewWithAPI(api ObjectAPI, bucket string, publicUrl string) *Bucket {
	return &Bucket{
		api:       api,
		bucket:    bucket,
		publicUrl: publicUrl,
		http:      &http.Client{Timeout: time.Minute},
	}
}

func (b *Bucket) media(key string) (domain.Media, error) {
	u, err := url.JoinPath(b.publicUrl, key)
	if err != nil {
		return domain.Media{}, err
	}
	return domain.Media{Url: &u, Key: &key}, nil
}

func (b *Bucket) Put(ctx context.Context, key string, contentType string, body []byte) (domain.Media, error) {
	if _, err := b.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	}); err != nil {
		return domain.Media{}, fmt.Errorf("storage: put %s: %w", key, err)
	}
	return b.media(key)
}

func (b *Bucket) PutFromUrl(ctx context.Context, key string, src string) (domain.Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return domain.Media{}, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return domain.Media{}, fmt.Errorf("%w: %s: %w", ErrDownload, src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Media{}, fmt.Errorf("%w: %s: status %d", ErrDownload, src, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Media{}, fmt.Errorf("%w: %s: %w", ErrDownload, src, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return b.Put(ctx, key, contentType, body)
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	if _, err := b.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
