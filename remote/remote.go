// Package remote talks to the hosted background-removal and vectorization
// services. Each service is an opaque function from image bytes to result
// bytes; failures are reported as returned, nothing is retried.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"imgframe/configs"
)

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// Submitter sends one image to a remote service and returns its result.
type Submitter interface {
	Submit(ctx context.Context, image []byte, filename string) ([]byte, error)
}

// StatusError is a non-2xx response. Body is the service's own message.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Service, e.StatusCode, body)
}

// PayloadError is a 2xx response whose body is not what the service promises.
type PayloadError struct {
	Service string
	Reason  string
	Body    []byte
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s", e.Service, e.Reason)
}

// snippet returns the start of a payload for error messages.
func snippet(b []byte) string {
	s := strings.TrimSpace(string(b[:min(len(b), 100)]))
	if s == "" {
		return "empty body"
	}
	return fmt.Sprintf("%q", s)
}

func defaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: configs.RequestTimeout}
}

// multipartBody builds a form with the image under fileField plus fields.
func multipartBody(fileField, filename string, image []byte, fields [][2]string) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile(fileField, filepath.Base(filename))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &body, mw.FormDataContentType(), nil
}

// do performs req and returns the body of a 2xx response.
func do(client *http.Client, service string, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: error reading response: %w", service, err)
	}
	return data, nil
}
