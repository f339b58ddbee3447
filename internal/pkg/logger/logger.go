// Package logger builds the application-wide zap logger.
package logger

import "go.uber.org/zap"

// New constructs a zap logger for the given environment. "production"
// yields JSON output at info level; anything else yields the development
// console encoder at debug level.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
