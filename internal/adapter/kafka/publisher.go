package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/couchcryptid/latam-briefing-service/internal/config"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/m-mizutani/goerr/v2"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	maxAttempts    = 3
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 2 * time.Second
)

// messageWriter is the subset of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes country briefings to a Kafka topic, one message per country.
// It implements pipeline.Publisher.
type Publisher struct {
	writer  messageWriter
	period  string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured briefing topic.
// period is stamped on every message header.
func NewPublisher(cfg *config.Config, period string, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newPublisher(w, period, logger, metrics)
}

func newPublisher(w messageWriter, period string, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	return &Publisher{writer: w, period: period, logger: logger, metrics: metrics}
}

// Publish serializes views and writes them in a single WriteMessages call.
// Transient write failures are retried with exponential backoff.
func (p *Publisher) Publish(ctx context.Context, views []pipeline.CountryView) error {
	if len(views) == 0 {
		return nil
	}
	start := time.Now()
	publishedAt := domain.Now()

	msgs := make([]kafkago.Message, len(views))
	for i := range views {
		msg, err := serializeToMessage(views[i], p.period, publishedAt)
		if err != nil {
			p.metrics.PublishErrors.Inc()
			return err
		}
		msgs[i] = msg
	}

	if err := p.writeWithRetry(ctx, msgs); err != nil {
		p.metrics.PublishErrors.Inc()
		return err
	}

	p.metrics.MessagesPublished.Add(float64(len(msgs)))
	p.metrics.PublishDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("briefing published", "messages", len(msgs), "period", p.period)
	return nil
}

func (p *Publisher) writeWithRetry(ctx context.Context, msgs []kafkago.Message) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = p.writer.WriteMessages(ctx, msgs...); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		p.logger.Warn("publish attempt failed", "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			return goerr.Wrap(ctx.Err(), "publish cancelled")
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return goerr.Wrap(err, "write briefing messages", goerr.V("attempts", maxAttempts))
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a CountryView into a Kafka message keyed by country.
func serializeToMessage(view pipeline.CountryView, period string, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return kafkago.Message{}, goerr.Wrap(err, "serialize country view", goerr.V(domain.CountryKey, view.Country))
	}
	return kafkago.Message{
		Key:   []byte(view.Country),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "period", Value: []byte(period)},
			{Key: "published_at", Value: []byte(publishedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
