package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/latam-briefing-service/internal/chart"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func runValidate(w io.Writer, logger *slog.Logger, metrics *observability.Metrics, path string) error {
	data := domain.EmbeddedBriefing()
	source := "embedded briefing.toml"
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("read briefing: %w", err)
		}
		source = path
	}

	fmt.Fprintln(w, "=== Briefing Integrity Validation ===")
	fmt.Fprintf(w, "Source: %s\n\n", source)

	decode := &phase{name: "Decode and field ranges"}
	b, err := domain.LoadBriefing(data)
	if err != nil {
		decode.errorf("%v", err)
		logger.Debug("briefing rejected", observability.ErrAttrs(err)...)
		return report(w, []*phase{decode})
	}

	registryPhase := &phase{name: "Country registry invariants"}
	reg, err := b.Registry()
	if err != nil {
		registryPhase.errorf("%v", err)
		return report(w, []*phase{decode, registryPhase})
	}
	validateRegistry(registryPhase, reg)

	phases := []*phase{
		decode,
		registryPhase,
		validateConsistency(b, reg),
		validateProjection(reg, logger, metrics),
	}
	fmt.Fprintf(w, "Countries: %d, topics: %d, indicators: %d, events: %d\n\n",
		reg.Len(), len(b.Topics.Items), len(b.Critical.Indicators), len(b.Critical.Events))
	return report(w, phases)
}

func report(w io.Writer, phases []*phase) error {
	allPassed := true
	for _, p := range phases {
		status := passStyle.Render("PASS")
		if !p.passed() {
			status = failStyle.Render(fmt.Sprintf("FAIL (%d errors)", len(p.errors)))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-36s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return errValidationFailed
}

// validateRegistry checks what NewRegistry does not: canonical category order
// and deterministic key iteration.
func validateRegistry(p *phase, reg *domain.Registry) {
	canonical := make([]string, 0, domain.ImpactDimensions)
	for _, c := range domain.ImpactCategories() {
		canonical = append(canonical, string(c))
	}

	keys := reg.Keys()
	if !slices.Equal(keys, reg.Keys()) {
		p.errorf("registry keys differ between calls")
	}
	for _, key := range keys {
		rec, err := reg.Get(key)
		if err != nil {
			p.errorf("%s: %v", key, err)
			continue
		}
		if !slices.Equal(rec.ImpactCategories, canonical) {
			p.errorf("%s: impact categories %v, want %v", key, rec.ImpactCategories, canonical)
		}
		if len(rec.KeyAreas) == 0 {
			p.errorf("%s: no key areas", key)
		}
	}
}

// validateConsistency cross-checks the datasets that describe the same countries.
func validateConsistency(b *domain.Briefing, reg *domain.Registry) *phase {
	p := &phase{name: "Cross-dataset consistency"}
	keys := reg.Keys()

	mentions := b.Mentions()
	names := make([]string, len(mentions))
	for i, m := range mentions {
		names[i] = m.Country
		if m.KeyAreas == "" {
			p.errorf("mention table: %s has no areas", m.Country)
		}
	}
	if !slices.Equal(names, keys) {
		p.errorf("mention table order %v differs from selector order %v", names, keys)
	}

	locations := chart.ImpactChoropleth(b.Countries.MapTitle, mentions).Data[0].Locations
	if !slices.Equal(locations, keys) {
		p.errorf("impact map countries %v differ from registry %v", locations, keys)
	}

	anchors := map[string]string{}
	for _, s := range b.Sections {
		if prev, ok := anchors[s.Anchor()]; ok {
			p.errorf("sections %q and %q share anchor %q", prev, s.Title, s.Anchor())
		}
		anchors[s.Anchor()] = s.Title
	}

	checkUnique(p, "topics", b.Topics.Items, func(t domain.Topic) string { return t.Name })
	checkUnique(p, "trade rows", b.Implications.Trade.Rows, func(r domain.TradeChange) string { return r.Category })
	checkUnique(p, "investment rows", b.Implications.Investment.Rows, func(r domain.InvestmentSector) string { return r.Sector })
	checkUnique(p, "migration rows", b.Implications.Migration.Rows, func(r domain.MigrationFlow) string { return r.Country })
	checkUnique(p, "security rows", b.Implications.Security.Rows, func(r domain.SecurityArea) string { return r.Area })
	checkUnique(p, "critical indicators", b.Critical.Indicators, func(i domain.CriticalIndicator) string { return i.Area })
	return p
}

func checkUnique[T any](p *phase, label string, rows []T, key func(T) string) {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		k := key(r)
		if seen[k] {
			p.errorf("%s: duplicate %q", label, k)
		}
		seen[k] = true
	}
}

// validateProjection drives every key through the selection pipeline and
// checks an unknown key leaves the selection alone.
func validateProjection(reg *domain.Registry, logger *slog.Logger, metrics *observability.Metrics) *phase {
	p := &phase{name: "Selection and projection"}
	pl := pipeline.New(reg, logger, metrics)

	sel, err := pl.NewSelection("")
	if err != nil {
		p.errorf("initial selection: %v", err)
		return p
	}
	for _, key := range reg.Keys() {
		if err := pl.Select(&sel, key); err != nil {
			p.errorf("select %s: %v", key, err)
			continue
		}
		view, err := pl.View(sel)
		if err != nil {
			p.errorf("view %s: %v", key, err)
			continue
		}
		rec, _ := reg.Get(key)
		if view.Overview != rec.Overview ||
			!slices.Equal(view.KeyAreas, rec.KeyAreas) ||
			!slices.Equal(view.ImpactCategories, rec.ImpactCategories) ||
			!slices.Equal(view.ImpactValues, rec.ImpactValues) {
			p.errorf("%s: projection differs from record", key)
		}
	}

	kept := sel.Country()
	if err := pl.Select(&sel, "\x00unknown"); !errors.Is(err, domain.ErrInvalidSelection) {
		p.errorf("unknown key: got %v, want invalid selection", err)
	}
	if sel.Country() != kept {
		p.errorf("unknown key moved selection from %s to %s", kept, sel.Country())
	}
	return p
}
