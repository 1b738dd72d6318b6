package main

import (
	"context"
	"os"

	"github.com/yesroad/daily-briefing-bot/internal/app"
	"github.com/yesroad/daily-briefing-bot/internal/config"
	"github.com/yesroad/daily-briefing-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	if err := cfg.ValidateWeekly(); err != nil {
		logger.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("weekly economy briefing started")
	if err := app.RunWeekly(context.Background(), cfg); err != nil {
		logger.Error("weekly briefing failed", "error", err)
		os.Exit(1)
	}
}
