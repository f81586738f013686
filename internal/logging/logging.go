// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/pocket-auth-server/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Setup installs the global logger and returns a closer for the log file, if any.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	logger, closer, err := New(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
	return closer, nil
}

// New builds a logger writing to out and, when a log file is configured, to a
// size-rotated file as well.
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.GetLogLevel()))
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: invalid level %q: %w", cfg.GetLogLevel(), err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var writer io.Writer
	switch cfg.GetLogFormat() {
	case FormatJSON:
		writer = out
	case FormatConsole, "":
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), nil, fmt.Errorf("logging: unknown format %q", cfg.GetLogFormat())
	}

	var closer io.Closer = nopCloser{}
	if path := cfg.GetLogFile(); path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		writer = zerolog.MultiLevelWriter(writer, file)
		closer = file
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
