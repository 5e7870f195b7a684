package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/latam-briefing-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/latam-briefing-service/internal/adapter/kafka"
	"github.com/couchcryptid/latam-briefing-service/internal/chart"
	"github.com/couchcryptid/latam-briefing-service/internal/config"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/couchcryptid/latam-briefing-service/internal/render"
	"github.com/couchcryptid/latam-briefing-service/internal/scheduler"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	b, err := domain.DefaultBriefing()
	if err != nil {
		return err
	}
	reg, err := domain.DefaultRegistry()
	if err != nil {
		return err
	}
	p := pipeline.New(reg, logger, metrics)

	// Fail fast on a DEFAULT_COUNTRY the registry does not know.
	if _, err := p.NewSelection(cfg.DefaultCountry); err != nil {
		return fmt.Errorf("DEFAULT_COUNTRY: %w", err)
	}

	page, err := render.NewPage(b)
	if err != nil {
		return err
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Dependencies{
		Pipeline:       p,
		Briefing:       b,
		Page:           page,
		Radar:          chart.NewRadarCache(cfg.ChartCacheSize, metrics),
		DefaultCountry: cfg.DefaultCountry,
		Logger:         logger,
		Metrics:        metrics,
	})
	logger.Info("briefing loaded", "period", b.Period, "countries", reg.Len())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Publishing is feature-flagged via PUBLISH_ENABLED / PUBLISH_SCHEDULE.
	var publisher *kafkaadapter.Publisher
	var sched *scheduler.Scheduler
	if cfg.PublishEnabled && cfg.PublishSchedule != "" {
		publisher = kafkaadapter.NewPublisher(cfg, b.Period, logger, metrics)
		sched, err = scheduler.New(cfg.PublishSchedule, func(ctx context.Context) error {
			return p.Publish(ctx, publisher)
		}, logger)
		if err != nil {
			return err
		}
		sched.Start(ctx)
		logger.Info("briefing publishing enabled", "topic", cfg.KafkaTopic, "schedule", cfg.PublishSchedule)
	} else {
		logger.Info("briefing publishing disabled")
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sched != nil {
		sched.Stop()
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}
