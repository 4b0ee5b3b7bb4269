package main

import (
	"os"
	"supplychain-service/internal/config"
	"supplychain-service/internal/platform/obs"

	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if err := newRootCmd(cfg, log).Execute(); err != nil {
		log.Error("dbtool failed", zap.Error(err))
		os.Exit(1)
	}
}
