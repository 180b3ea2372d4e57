package logging

import (
	"log"

	"go.uber.org/zap"
)

// New builds the process logger: human-readable in development, JSON in
// production.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	return logger
}
