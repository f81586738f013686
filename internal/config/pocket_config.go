package config

import "time"

type PocketConfig interface {
	GetConsumerKey() string
	GetPocketBaseURL() string
	GetPocketTimeout() time.Duration
}

// Pocket holds the consumer identity presented to the Pocket API.
type Pocket struct {
	ConsumerKey string        `env:"POCKET_CONSUMER_KEY,notEmpty"`
	BaseURL     string        `env:"POCKET_BASE_URL" envDefault:"https://getpocket.com"`
	Timeout     time.Duration `env:"POCKET_TIMEOUT" envDefault:"10s"`
}

var _ PocketConfig = Pocket{}

func (p Pocket) GetConsumerKey() string {
	return p.ConsumerKey
}

func (p Pocket) GetPocketBaseURL() string {
	return p.BaseURL
}

func (p Pocket) GetPocketTimeout() time.Duration {
	return p.Timeout
}
