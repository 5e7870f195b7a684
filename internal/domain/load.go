package domain

import (
	_ "embed"
	"slices"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

//go:embed briefing.toml
var briefingTOML []byte

var (
	defaultBriefing = sync.OnceValues(func() (*Briefing, error) {
		return LoadBriefing(briefingTOML)
	})
	defaultRegistry = sync.OnceValues(func() (*Registry, error) {
		b, err := defaultBriefing()
		if err != nil {
			return nil, err
		}
		return b.Registry()
	})
)

// DefaultBriefing returns this week's embedded briefing, decoded once per process.
func DefaultBriefing() (*Briefing, error) {
	return defaultBriefing()
}

// DefaultRegistry returns the country registry built from DefaultBriefing.
func DefaultRegistry() (*Registry, error) {
	return defaultRegistry()
}

// EmbeddedBriefing returns a copy of the embedded TOML document.
func EmbeddedBriefing() []byte {
	return slices.Clone(briefingTOML)
}

// LoadBriefing decodes a TOML briefing document and validates it.
func LoadBriefing(data []byte) (*Briefing, error) {
	var b Briefing
	if err := toml.Unmarshal(data, &b); err != nil {
		return nil, goerr.Wrap(err, "decode briefing")
	}
	b.normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// normalize trims the surrounding whitespace TOML multi-line strings keep.
func (b *Briefing) normalize() {
	b.Summary = strings.TrimSpace(b.Summary)
	b.Topics.Analysis = strings.TrimSpace(b.Topics.Analysis)
	b.Critical.Analysis = strings.TrimSpace(b.Critical.Analysis)
	trimNotes(b.Implications.Trade.Notes)
	trimNotes(b.Implications.Investment.Notes)
	trimNotes(b.Implications.Migration.Notes)
	trimNotes(b.Implications.Security.Notes)
	for i := range b.Countries.Entries {
		b.Countries.Entries[i].Overview = strings.TrimSpace(b.Countries.Entries[i].Overview)
	}
}

func trimNotes(notes []Note) {
	for i := range notes {
		notes[i].Body = strings.TrimSpace(notes[i].Body)
	}
}

// Validate checks field presence and value ranges across every dataset.
func (b *Briefing) Validate() error {
	if b.Title == "" {
		return invalidField("title")
	}
	if b.Period == "" {
		return invalidField("period")
	}
	if len(b.Sections) == 0 {
		return invalidField("section")
	}
	for i, s := range b.Sections {
		if s.Title == "" {
			return invalidField("section.title", goerr.V(IndexKey, i))
		}
	}

	for i, t := range b.Topics.Items {
		if t.Name == "" || t.Mentions < 0 || !inImpactRange(t.Impact) {
			return invalidField("topics.item", goerr.V(IndexKey, i), goerr.V("name", t.Name))
		}
	}

	if err := b.validateImplications(); err != nil {
		return err
	}

	if len(b.Countries.Entries) == 0 {
		return invalidField("countries.country")
	}
	for i, e := range b.Countries.Entries {
		if e.Mentions < 0 || !inImpactRange(e.Impact) {
			return invalidField("countries.country", goerr.V(IndexKey, i), goerr.V(CountryKey, e.Name))
		}
		if err := e.record().Validate(); err != nil {
			return goerr.Wrap(ErrInvalidBriefing, err.Error(), goerr.V(IndexKey, i), goerr.V(CountryKey, e.Name))
		}
	}

	for i, ind := range b.Critical.Indicators {
		if ind.Area == "" || ind.CurrentValue <= 0 || !inImpactRange(ind.LatamImpact) {
			return invalidField("critical.indicator", goerr.V(IndexKey, i), goerr.V("area", ind.Area))
		}
	}
	for i, ev := range b.Critical.Events {
		if ev.Date == "" || ev.Description == "" {
			return invalidField("critical.event", goerr.V(IndexKey, i))
		}
	}
	return nil
}

func (b *Briefing) validateImplications() error {
	im := b.Implications
	if len(im.Trade.Rows) == 0 || len(im.Investment.Rows) == 0 ||
		len(im.Migration.Rows) == 0 || len(im.Security.Rows) == 0 {
		return invalidField("implications")
	}
	for i, r := range im.Trade.Rows {
		if r.Category == "" {
			return invalidField("implications.trade.row", goerr.V(IndexKey, i))
		}
	}
	for i, r := range im.Investment.Rows {
		if r.Sector == "" || r.InvestmentMUSD < 0 {
			return invalidField("implications.investment.row", goerr.V(IndexKey, i))
		}
	}
	for i, r := range im.Migration.Rows {
		if r.Country == "" || r.RemittancesMUSD < 0 || r.MigrationImpact < 1 || r.MigrationImpact > 10 {
			return invalidField("implications.migration.row", goerr.V(IndexKey, i))
		}
	}
	for i, r := range im.Security.Rows {
		if r.Area == "" || r.USFundingMUSD < 0 || r.CooperationIndex < 1 || r.CooperationIndex > 10 {
			return invalidField("implications.security.row", goerr.V(IndexKey, i))
		}
	}
	return nil
}

func invalidField(field string, opts ...goerr.Option) error {
	return goerr.Wrap(ErrInvalidBriefing, "invalid field", append(opts, goerr.V(FieldKey, field))...)
}

func inImpactRange(v float64) bool {
	return v >= MinImpact && v <= MaxImpact
}
