package config

import "time"

type ServerConfig interface {
	GetReadHeaderTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetShutdownTimeout() time.Duration
}

type Server struct {
	ReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

var _ ServerConfig = Server{}

func (s Server) GetReadHeaderTimeout() time.Duration {
	return s.ReadHeaderTimeout
}

func (s Server) GetWriteTimeout() time.Duration {
	return s.WriteTimeout
}

func (s Server) GetShutdownTimeout() time.Duration {
	return s.ShutdownTimeout
}
