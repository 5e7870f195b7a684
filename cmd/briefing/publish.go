package main

import (
	"fmt"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/couchcryptid/latam-briefing-service/internal/adapter/kafka"
	"github.com/couchcryptid/latam-briefing-service/internal/config"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/spf13/cobra"
)

func runPublish(cmd *cobra.Command, _ []string) error {
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

	publisher := kafkaadapter.NewPublisher(cfg, b.Period, logger, metrics)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := p.Publish(ctx, publisher); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published %d countries to %s\n", reg.Len(), cfg.KafkaTopic)
	return nil
}
