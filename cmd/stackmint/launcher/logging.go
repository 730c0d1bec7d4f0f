package launcher

import (
	"fmt"

	"github.com/evalphobia/logrus_sentry"
	"github.com/sirupsen/logrus"
)

// setupLogging configures the global logrus logger from the config:
// formatter, verbosity, and the optional Sentry hook for error reporting.
func setupLogging(cfg Config) error {
	switch cfg.Logging.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   cfg.Logging.Color,
			FullTimestamp: true,
		})
	default:
		return fmt.Errorf("unknown log format: %q (valid: text, json)", cfg.Logging.Format)
	}

	level := logrus.Level(cfg.Logging.Verbosity)
	if level > logrus.TraceLevel {
		level = logrus.TraceLevel
	}
	logrus.SetLevel(level)

	if cfg.Sentry.DSN != "" {
		hook, err := logrus_sentry.NewSentryHook(cfg.Sentry.DSN, []logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		if err != nil {
			return fmt.Errorf("sentry hook: %w", err)
		}
		logrus.AddHook(hook)
	}
	return nil
}
