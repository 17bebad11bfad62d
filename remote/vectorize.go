package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"imgframe/configs"
	"imgframe/utils"
)

// Vectorizer submits images to the Recraft vectorize endpoint and downloads
// the resulting SVG.
type Vectorizer struct {
	BaseURL string // defaults to configs.VectorizeBaseURL
	APIKey  string
	Client  *http.Client
}

var _ Submitter = (*Vectorizer)(nil)

type vectorizeResponse struct {
	Image *struct {
		URL string `json:"url"`
	} `json:"image"`
	Error json.RawMessage `json:"error"`
}

func (v *Vectorizer) Submit(ctx context.Context, image []byte, filename string) ([]byte, error) {
	const service = "vectorize"

	body, contentType, err := multipartBody("file", filename, image, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: error building request: %w", service, err)
	}

	base := v.BaseURL
	if base == "" {
		base = configs.VectorizeBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/v1/images/vectorize", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+v.APIKey)
	req.Header.Set("Content-Type", contentType)

	client := defaultClient(v.Client)
	data, err := do(client, service, req)
	if err != nil {
		return nil, err
	}

	var resp vectorizeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &PayloadError{Service: service, Reason: "invalid JSON: " + snippet(data), Body: data}
	}
	if len(resp.Error) > 0 && string(resp.Error) != "null" {
		return nil, &PayloadError{Service: service, Reason: "service error: " + errorText(resp.Error), Body: data}
	}
	if resp.Image == nil || resp.Image.URL == "" {
		return nil, &PayloadError{Service: service, Reason: "no SVG URL in response", Body: data}
	}

	logrus.WithField("file", filename).Debugf("%s: downloading %s", service, resp.Image.URL)
	get, err := http.NewRequestWithContext(ctx, http.MethodGet, resp.Image.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SVG URL: %w", service, err)
	}
	svg, err := do(client, service, get)
	if err != nil {
		return nil, err
	}
	if utils.SniffFormat(svg) != "svg" {
		return nil, &PayloadError{Service: service, Reason: "not an SVG: " + snippet(svg), Body: svg}
	}
	return svg, nil
}

// errorText renders the "error" member, which is either a string or an object.
func errorText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
