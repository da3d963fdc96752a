package storage_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lucas-ellwanger/newtube/pkg/storage"
	"github.com/lucas-ellwanger/newtube/pkg/utils/try"
)

type put struct {
	Bucket      string
	Key         string
	ContentType string
	Body        string
}

type fakeAPI struct {
	puts    []put
	deletes []string
	err     error
}

func (f *fakeAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, put{
		Bucket:      aws.ToString(in.Bucket),
		Key:         aws.ToString(in.Key),
		ContentType: aws.ToString(in.ContentType),
		Body:        string(b),
	})
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, f.err
}

func TestBucket_Put(t *testing.T) {
	api := &fakeAPI{}
	testee := storage.NewWithAPI(api, "media", "https://cdn.example.com")

	m := try.To(testee.Put(context.Background(), "videos/v1/t.png", "image/png", []byte("png"))).OrFatal(t)
	if *m.Url != "https://cdn.example.com/videos/v1/t.png" || *m.Key != "videos/v1/t.png" {
		t.Errorf("unexpected media: %s, %s", *m.Url, *m.Key)
	}
	want := put{Bucket: "media", Key: "videos/v1/t.png", ContentType: "image/png", Body: "png"}
	if len(api.puts) != 1 || api.puts[0] != want {
		t.Errorf("unexpected puts: %+v", api.puts)
	}
}

func TestBucket_PutFromUrl(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg"))
	}))
	defer srv.Close()

	t.Run("it copies the source", func(t *testing.T) {
		api := &fakeAPI{}
		testee := storage.NewWithAPI(api, "media", "https://cdn.example.com")

		m := try.To(testee.PutFromUrl(context.Background(), "k.jpg", srv.URL+"/thumbnail.jpg")).OrFatal(t)
		if *m.Key != "k.jpg" {
			t.Errorf("unexpected key: %s", *m.Key)
		}
		want := put{Bucket: "media", Key: "k.jpg", ContentType: "image/jpeg", Body: "jpeg"}
		if len(api.puts) != 1 || api.puts[0] != want {
			t.Errorf("unexpected puts: %+v", api.puts)
		}
	})

	t.Run("missing source is ErrDownload", func(t *testing.T) {
		api := &fakeAPI{}
		testee := storage.NewWithAPI(api, "media", "https://cdn.example.com")

		_, err := testee.PutFromUrl(context.Background(), "k.jpg", srv.URL+"/missing.jpg")
		if !errors.Is(err, storage.ErrDownload) {
			t.Errorf("unexpected error: %v", err)
		}
		if len(api.puts) != 0 {
			t.Errorf("unexpected puts: %+v", api.puts)
		}
	})
}

func TestBucket_Delete(t *testing.T) {
	api := &fakeAPI{err: errors.New("fake")}
	testee := storage.NewWithAPI(api, "media", "https://cdn.example.com")

	if err := testee.Delete(context.Background(), "k.jpg"); err == nil {
		t.Error("error is not propagated")
	}
	if len(api.deletes) != 1 || api.deletes[0] != "k.jpg" {
		t.Errorf("unexpected deletes: %v", api.deletes)
	}
}

func TestKeys(t *testing.T) {
	a := storage.ThumbnailKey("v1", ".jpg")
	b := storage.ThumbnailKey("v1", ".jpg")
	if a == b {
		t.Errorf("keys should be unique: %s", a)
	}
	if !strings.HasPrefix(a, "videos/v1/thumbnail-") || !strings.HasSuffix(a, ".jpg") {
		t.Errorf("unexpected key: %s", a)
	}
	if p := storage.PreviewKey("v1", ".gif"); !strings.HasPrefix(p, "videos/v1/preview-") {
		t.Errorf("unexpected key: %s", p)
	}
}
