package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DefaultCountry is the initial selection. Empty means the first registry key;
	// the value is checked against the registry when the pipeline starts.
	DefaultCountry string
	ChartCacheSize int

	KafkaBrokers    []string
	KafkaTopic      string
	PublishEnabled  bool
	PublishSchedule string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseChartCacheSize()
	if err != nil {
		return nil, err
	}

	publishEnabled := false
	if v := os.Getenv("PUBLISH_ENABLED"); v != "" {
		publishEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid PUBLISH_ENABLED: must be a boolean")
		}
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DefaultCountry:  os.Getenv("DEFAULT_COUNTRY"),
		ChartCacheSize:  cacheSize,
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "latam-briefing"),
		PublishEnabled:  publishEnabled,
		PublishSchedule: os.Getenv("PUBLISH_SCHEDULE"),
	}

	if cfg.PublishSchedule != "" {
		if _, err := cron.ParseStandard(cfg.PublishSchedule); err != nil {
			return nil, errors.New("invalid PUBLISH_SCHEDULE: " + err.Error())
		}
	}
	if cfg.PublishEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when PUBLISH_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when PUBLISH_ENABLED is true")
		}
	}
	if cfg.PublishSchedule != "" && !cfg.PublishEnabled {
		return nil, errors.New("PUBLISH_SCHEDULE is set but PUBLISH_ENABLED is false")
	}

	return cfg, nil
}

func parseChartCacheSize() (int, error) {
	s := os.Getenv("CHART_CACHE_SIZE")
	if s == "" {
		return 64, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New("invalid CHART_CACHE_SIZE: must be a positive integer")
	}
	return n, nil
}
