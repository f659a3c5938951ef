package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rowjay/bell-schedule/internal/config"
)

// Configure builds a zerolog logger from config values. Logs go to stderr so
// command output on stdout stays clean; a rotating file is added when
// log_file.path is set.
func Configure(cfg config.GlobalConfig) zerolog.Logger {
	return New(os.Stderr, cfg)
}

// New is Configure with an explicit console writer.
func New(out io.Writer, cfg config.GlobalConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	console := out
	if strings.EqualFold(cfg.LogFormat, "console") {
		console = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	output := console
	if cfg.LogFile.Path != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile.Path,
			MaxSize:    cfg.LogFile.MaxSizeMB,
			MaxBackups: cfg.LogFile.MaxBackups,
			MaxAge:     cfg.LogFile.MaxAgeDays,
			Compress:   cfg.LogFile.Compress,
		}
		output = zerolog.MultiLevelWriter(console, file)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
