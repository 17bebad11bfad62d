package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"imgframe/configs"
	"imgframe/utils"
)

// RemoveBG submits images to the remove.bg API and returns a PNG with a
// transparent background.
type RemoveBG struct {
	BaseURL string // defaults to configs.RemoveBGBaseURL
	APIKey  string
	Client  *http.Client
}

var _ Submitter = (*RemoveBG)(nil)

func (r *RemoveBG) Submit(ctx context.Context, image []byte, filename string) ([]byte, error) {
	const service = "remove.bg"

	body, contentType, err := multipartBody("image_file", filename, image, [][2]string{
		{"size", "auto"},
		{"format", "png"},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: error building request: %w", service, err)
	}

	base := r.BaseURL
	if base == "" {
		base = configs.RemoveBGBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/v1.0/removebg", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", r.APIKey)
	req.Header.Set("Content-Type", contentType)

	logrus.WithField("file", filename).Debugf("%s: submitting %d bytes", service, len(image))
	data, err := do(defaultClient(r.Client), service, req)
	if err != nil {
		return nil, err
	}
	if format := utils.SniffFormat(data); !utils.IsRaster(format) {
		return nil, &PayloadError{Service: service, Reason: "not an image: " + snippet(data), Body: data}
	}
	return data, nil
}
