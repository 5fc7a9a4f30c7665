// Package logger builds the service's zap logger.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a production (JSON, info level) logger for mode "prod"/"production" and a
// development (console, debug level) logger otherwise.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
