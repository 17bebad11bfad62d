package remote

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

const svgDoc = `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="2" height="2"></svg>`

func TestRemoveBG(t *testing.T) {
	result := pngBytes(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1.0/removebg", r.URL.Path)
		assert.Equal(t, "key-123", r.Header.Get("X-Api-Key"))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "auto", r.FormValue("size"))
		assert.Equal(t, "png", r.FormValue("format"))

		f, hdr, err := r.FormFile("image_file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, "logo.jpg", hdr.Filename)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "input-bytes", string(data))

		w.Header().Set("Content-Type", "image/png")
		w.Write(result)
	}))
	defer srv.Close()

	rb := &RemoveBG{BaseURL: srv.URL, APIKey: "key-123", Client: srv.Client()}
	got, err := rb.Submit(context.Background(), []byte("input-bytes"), "/tmp/logo.jpg")
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestRemoveBGFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "quota exceeded",
			status: http.StatusPaymentRequired,
			body:   `{"errors":[{"title":"Insufficient credits"}]}`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusPaymentRequired, se.StatusCode)
				assert.Equal(t, `{"errors":[{"title":"Insufficient credits"}]}`, se.Body)
				assert.Contains(t, err.Error(), "Insufficient credits")
			},
		},
		{
			name:   "non image payload",
			status: http.StatusOK,
			body:   "<html>maintenance</html>",
			check: func(t *testing.T, err error) {
				var pe *PayloadError
				require.True(t, errors.As(err, &pe))
				assert.Contains(t, err.Error(), "maintenance")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			rb := &RemoveBG{BaseURL: srv.URL, Client: srv.Client()}
			_, err := rb.Submit(context.Background(), []byte("x"), "a.png")
			tt.check(t, err)
		})
	}
}

func TestRemoveBGCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rb := &RemoveBG{BaseURL: srv.URL, Client: srv.Client()}
	_, err := rb.Submit(ctx, []byte("x"), "a.png")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestVectorizer(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/v1/images/vectorize", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		f, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		f.Close()
		io.WriteString(w, `{"image":{"url":"`+srv.URL+`/files/out.svg"}}`)
	})
	mux.HandleFunc("/files/out.svg", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, svgDoc)
	})

	v := &Vectorizer{BaseURL: srv.URL, APIKey: "tok", Client: srv.Client()}
	got, err := v.Submit(context.Background(), pngBytes(t), "logo.png")
	require.NoError(t, err)
	assert.Equal(t, svgDoc, string(got))
}

func TestVectorizerFailures(t *testing.T) {
	tests := []struct {
		name    string
		api     string
		file    string
		wantErr string
	}{
		{name: "service error", api: `{"error":"invalid image"}`, wantErr: "invalid image"},
		{name: "structured error", api: `{"error":{"code":"quota"}}`, wantErr: "quota"},
		{name: "no url", api: `{"image":{}}`, wantErr: "no SVG URL"},
		{name: "not json", api: `oops`, wantErr: "invalid JSON"},
		{name: "not svg", api: `{"image":{"url":"%s/files/out.svg"}}`, file: `{"detail":"expired"}`, wantErr: "not an SVG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			srv := httptest.NewServer(mux)
			defer srv.Close()

			mux.HandleFunc("/v1/images/vectorize", func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, strings.ReplaceAll(tt.api, "%s", srv.URL))
			})
			mux.HandleFunc("/files/out.svg", func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.file)
			})

			v := &Vectorizer{BaseURL: srv.URL, Client: srv.Client()}
			_, err := v.Submit(context.Background(), pngBytes(t), "logo.png")
			var pe *PayloadError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVectorizerStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	v := &Vectorizer{BaseURL: srv.URL, Client: srv.Client()}
	_, err := v.Submit(context.Background(), pngBytes(t), "logo.png")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "unauthorized\n", se.Body)
}

