package main

import (
	"flag"

	"github.com/boddenberg/dotenv-go/dotenv"
	"github.com/boddenberg/dotenv-go/internal/config"
	"github.com/boddenberg/dotenv-go/internal/infra/observability"

	"go.uber.org/zap"
)

func main() {
	root := flag.String("root", ".", "directory holding the default .env file")
	flag.Parse()

	// --- Config ---
	cfg := config.Load(*root)

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("log_level", cfg.LogLevel),
		zap.String("dotenv_path", cfg.DotenvPath),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
	)

	// --- Metrics ---
	var metrics *observability.Metrics
	var rec dotenv.Recorder
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		rec = metrics
	}

	// --- Load ---
	loader, attempted := config.Bootstrap(cfg.DotenvPath, logger, rec)
	if !attempted {
		logger.Info("no dotenv file, nothing to load", zap.String("path", cfg.DotenvPath))
		return
	}

	res := loader.Result()
	fields := []zap.Field{
		zap.String("path", res.Path),
		zap.Strings("inserted_keys", res.Inserted),
		zap.Ints("rejected_lines", res.Rejected),
	}
	if metrics != nil {
		stats := metrics.Snapshot()
		fields = append(fields,
			zap.Float64("env_inserts", stats.EnvInserts),
			zap.Float64("server_inserts", stats.ServerInserts),
			zap.Float64("load_seconds", stats.TotalLoadTimeS),
		)
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}

	logger.Info("dotenv bootstrap finished", fields...)
}
