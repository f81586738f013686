package config

type LogConfig interface {
	GetLogLevel() string
	GetLogFormat() string
	GetLogFile() string
}

type Logging struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
	File   string `env:"LOG_FILE"`
}

var _ LogConfig = Logging{}

func (l Logging) GetLogLevel() string {
	return l.Level
}

// GetLogFormat returns "console" or "json".
func (l Logging) GetLogFormat() string {
	return l.Format
}

// GetLogFile returns the path of the rotating log file, empty for stdout only.
func (l Logging) GetLogFile() string {
	return l.File
}
