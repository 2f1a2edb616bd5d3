// internal/workers/communication/send-recommendation-notification/config.go
package sendrecommendationnotification

import "time"

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	// SenderID is the alphanumeric SMS sender, when the region supports it.
	SenderID string
	// TopN is the number of careers named in the message.
	TopN    int
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		TopN:    3,
		Timeout: 30 * time.Second,
	}
}
