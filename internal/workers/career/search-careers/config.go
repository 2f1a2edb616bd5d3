// internal/workers/career/search-careers/config.go
package searchcareers

import "time"

type Config struct {
	Timeout time.Duration
	Index   string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Index:   "careers",
	}
}
