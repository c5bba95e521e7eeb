package main

import (
	"github.com/tovald/ChipsBot_Go/internal/config"
	"github.com/tovald/ChipsBot_Go/internal/handler"
	"github.com/tovald/ChipsBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev
	addSource := cfg.Environment == logger.EnvironmentDev || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
