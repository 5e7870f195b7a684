package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/m-mizutani/goerr/v2"
)

// Publisher distributes projected country views to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, views []CountryView) error
}

// Pipeline turns a country selection into the views the renderers consume.
// It holds no selection of its own; callers pass theirs in.
type Pipeline struct {
	registry *domain.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline over an already-built registry.
func New(registry *domain.Registry, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	metrics.RegistrySize.Set(float64(registry.Len()))
	return &Pipeline{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the registry holds at least one country.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.registry.Len() == 0 {
		return errors.New("country registry is empty")
	}
	return nil
}

// Countries returns the selectable country keys in display order.
func (p *Pipeline) Countries() []string {
	return p.registry.Keys()
}

// NewSelection returns a selection on defaultCountry, or on the first country
// when defaultCountry is empty.
func (p *Pipeline) NewSelection(defaultCountry string) (domain.Selection, error) {
	sel, err := domain.NewSelection(p.registry)
	if err != nil {
		return domain.Selection{}, err
	}
	if defaultCountry == "" {
		return sel, nil
	}
	if err := sel.Set(p.registry, defaultCountry); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

// Select moves sel to name. On ErrInvalidSelection sel is unchanged and the
// caller should keep showing the previous country.
func (p *Pipeline) Select(sel *domain.Selection, name string) error {
	previous := sel.Country()
	if err := sel.Set(p.registry, name); err != nil {
		p.metrics.Selections.WithLabelValues("rejected").Inc()
		p.logger.Warn("country selection rejected", append(observability.ErrAttrs(err), "kept", previous)...)
		return err
	}
	p.metrics.Selections.WithLabelValues("accepted").Inc()
	p.logger.Debug("country selected", "country", name, "previous", previous)
	return nil
}

// View resolves sel through the registry and projects the record.
func (p *Pipeline) View(sel domain.Selection) (CountryView, error) {
	return p.Lookup(sel.Country())
}

// Lookup projects the named country without touching any selection.
// Unknown names return domain.ErrNotFound.
func (p *Pipeline) Lookup(name string) (CountryView, error) {
	rec, err := p.registry.Get(name)
	if err != nil {
		return CountryView{}, goerr.Wrap(err, "project country view")
	}
	p.metrics.CountryViews.WithLabelValues(name).Inc()
	return Project(rec), nil
}

// Views projects every country in display order.
func (p *Pipeline) Views() ([]CountryView, error) {
	keys := p.registry.Keys()
	views := make([]CountryView, 0, len(keys))
	for _, key := range keys {
		v, err := p.Lookup(key)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// Publish projects every country and hands the views to pub.
func (p *Pipeline) Publish(ctx context.Context, pub Publisher) error {
	views, err := p.Views()
	if err != nil {
		return err
	}
	if err := pub.Publish(ctx, views); err != nil {
		p.logger.Error("briefing publish failed", observability.ErrAttrs(err)...)
		return err
	}
	return nil
}
