package main

import (
	"io"
	"log/slog"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/couchcryptid/latam-briefing-service/internal/render"
)

type showOptions struct {
	country string
	style   string
	width   int
}

func runShow(w io.Writer, logger *slog.Logger, metrics *observability.Metrics, opts showOptions) error {
	b, err := domain.DefaultBriefing()
	if err != nil {
		return err
	}
	reg, err := domain.DefaultRegistry()
	if err != nil {
		return err
	}
	term, err := render.NewTerminal(opts.style, opts.width)
	if err != nil {
		return err
	}

	metrics.PageRenders.WithLabelValues("terminal").Inc()
	if opts.country == "" {
		return term.Briefing(w, b)
	}

	p := pipeline.New(reg, logger, metrics)
	sel, err := p.NewSelection("")
	if err != nil {
		return err
	}
	if err := p.Select(&sel, opts.country); err != nil {
		return err
	}
	view, err := p.View(sel)
	if err != nil {
		return err
	}
	return term.Country(w, view, b.Countries.Recommendations)
}
