package config

type RedisConfig interface {
	GetRedisURL() string
}

type Redis struct {
	URL string `env:"REDIS_URL,notEmpty"`
}

var _ RedisConfig = Redis{}

func (r Redis) GetRedisURL() string {
	return r.URL
}
