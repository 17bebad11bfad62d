package configs

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	kDefaultRequestTimeout = 60 * time.Second

	DefaultPadding     = 5
	DefaultThreshold   = 240
	DefaultJPEGQuality = 95
	DefaultDPI         = 72.0

	RemoveBGBaseURL  = "https://api.remove.bg"
	VectorizeBaseURL = "https://external.api.recraft.ai"

	RemoveBGKeyEnv  = "REMOVE_BG_API_KEY"
	VectorizeKeyEnv = "RECRAFT_API_KEY"
)

var RequestTimeout = kDefaultRequestTimeout // remote collaborators, per request

// DefaultWorkers leaves one core for the rest of the system.
func DefaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

// APIKey reads a service key from the environment.
func APIKey(env string) (string, error) {
	key := strings.TrimSpace(os.Getenv(env))
	if key == "" {
		return "", fmt.Errorf("API key not set: export %s", env)
	}
	return key, nil
}
