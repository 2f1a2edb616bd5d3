// internal/workers/career/generate-recommendations/config.go
package generaterecommendations

import (
	"time"

	"career-workers/internal/recommendation"
)

type Config struct {
	Timeout time.Duration
	// ResponseLimit caps the recommendations returned in the job result.
	// Every survivor is still persisted.
	ResponseLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		ResponseLimit: recommendation.ResponseLimit,
	}
}
