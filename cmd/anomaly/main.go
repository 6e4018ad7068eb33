// Command anomaly loads a monthly temperature anomaly file, derives the
// yearly, seasonal and animation tables, and renders the charts into
// OUTPUT_DIR. Configuration is read from the environment.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/temperature-anomaly-etl/internal/adapter/frame"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/adapter/render"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/adapter/workbook"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/config"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/observability"
	"github.com/couchcryptid/temperature-anomaly-etl/internal/pipeline"
)

const manifestName = "manifest.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	extractor := frame.NewExtractor(cfg.InputPath, cfg.InputDelimiter, logger)
	renderer := render.New(render.Options{
		OutputDir:  cfg.OutputDir,
		FrameDelay: cfg.SpiralFrameDelay,
	}, logger)

	// A nil interface value, not a typed nil, disables the export.
	var writer pipeline.TableWriter
	if cfg.ExportTables {
		writer = workbook.NewWriter(cfg.OutputDir)
	}

	p := pipeline.New(extractor, writer, renderer, logger, metrics, cfg.ParallelRender)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	code := 0
	report, err := p.Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		code = 1
	} else {
		manifest := filepath.Join(cfg.OutputDir, manifestName)
		if err := report.WriteJSON(manifest); err != nil {
			logger.Error("manifest not written", "error", err)
			code = 1
		} else {
			logger.Info("manifest written", "path", manifest)
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics textfile not written", "error", err)
			code = 1
		}
	}

	stop()
	cancel()
	os.Exit(code)
}
