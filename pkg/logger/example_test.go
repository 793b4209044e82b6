package logger_test

import (
	"errors"

	"github.com/wonny/scorecard/pkg/config"
	"github.com/wonny/scorecard/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	log := logger.New(&config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	})

	log.WithFields(map[string]interface{}{
		"seller_id": "seller_1",
		"profit":    80.0,
		"rank":      0,
	}).Info("Seller ranked")

	// {"level":"info","seller_id":"seller_1","profit":80,"rank":0,"message":"Seller ranked",...}
}

// Example_withError demonstrates error logging
func Example_withError() {
	log := logger.New(&config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	})

	err := errors.New("dataset file not found")
	log.WithError(err).Error("Failed to load dataset")
}
