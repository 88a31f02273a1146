package logging

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/vancomm/minesweeper-engine/internal/config"
)

func level(c config.Config) (logrus.Level, error) {
	if c.Log.Level == "" {
		if c.Development() {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.Log.Level)
}

func formatter(c config.Config) logrus.Formatter {
	if c.Development() {
		return &logrus.TextFormatter{ForceColors: true}
	}
	return &logrus.JSONFormatter{}
}

// Setup applies the logging section of c to every logger. When a log file
// is configured, entries are also written there as JSON and rotated.
func Setup(c config.Config, loggers ...*logrus.Logger) error {
	lvl, err := level(c)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var hook logrus.Hook
	if c.Log.File != "" {
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   c.Log.File,
			MaxSize:    c.Log.MaxSizeMB,
			MaxBackups: c.Log.MaxBackups,
			MaxAge:     c.Log.MaxAgeDays,
			Level:      lvl,
			Formatter: &logrus.JSONFormatter{
				TimestampFormat: time.RFC3339,
			},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
	}

	for _, logger := range loggers {
		logger.SetLevel(lvl)
		logger.SetFormatter(formatter(c))
		if hook != nil {
			logger.AddHook(hook)
		}
	}
	return nil
}
