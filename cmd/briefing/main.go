package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/yesroad/daily-briefing-bot/internal/app"
	"github.com/yesroad/daily-briefing-bot/internal/config"
	"github.com/yesroad/daily-briefing-bot/internal/logger"
	"github.com/yesroad/daily-briefing-bot/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	if err := cfg.ValidateDaily(); err != nil {
		logger.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.MonitorAddr != "" {
		go startMonitoringServer(cfg.MonitorAddr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// No schedule means one run and exit, for GitHub Actions style invocation.
	if cfg.Schedule == "" {
		if err := app.RunDaily(ctx, cfg); err != nil {
			metrics.Global.SetError(err.Error())
			logger.Error("daily briefing failed", "error", err)
			os.Exit(1)
		}
		return
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		logger.Info("cron triggered, running daily briefing")
		if err := app.RunDaily(ctx, cfg); err != nil {
			metrics.Global.SetError(err.Error())
			logger.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("invalid cron schedule", "schedule", cfg.Schedule, "error", err)
		os.Exit(1)
	}
	c.Start()
	logger.Info("daily briefing scheduled", "schedule", cfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	cancel()
	c.Stop()
}

func startMonitoringServer(addr string) {
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("monitoring server starting", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Error("monitoring server stopped", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metrics.Global.GetStats())
}
