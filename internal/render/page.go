// Package render turns the briefing and a country view into an HTML page or
// terminal output.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/couchcryptid/latam-briefing-service/internal/chart"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

const timestampLayout = "02/01/2006 15:04"

// PageData is the per-request part of the dashboard.
type PageData struct {
	Country   pipeline.CountryView
	Countries []string

	// Radar is the encoded ImpactRadar figure for Country.
	Radar []byte

	// Notice is shown above the country selector, e.g. after a rejected selection.
	Notice string
}

// Page renders the dashboard. Static section figures are encoded once at
// construction; only the country panel changes between requests.
type Page struct {
	tmpl     *template.Template
	briefing *domain.Briefing
	mentions []domain.CountryMention
	panels   []panel
	figures  map[string]template.JS
}

type panel struct {
	ID     string
	Tab    string
	Title  string
	Notes  []domain.Note
	Figure template.JS
}

type pageModel struct {
	B           *domain.Briefing
	Mentions    []domain.CountryMention
	Panels      []panel
	Figures     map[string]template.JS
	Country     pipeline.CountryView
	Countries   []string
	Radar       template.JS
	Notice      string
	GeneratedAt string
}

// Anchor returns the fragment of the i-th sidebar section.
func (m pageModel) Anchor(i int) string {
	if i < len(m.B.Sections) {
		return m.B.Sections[i].Anchor()
	}
	return fmt.Sprintf("section-%d", i)
}

// SectionTitle returns the title of the i-th sidebar section, or "".
func (m pageModel) SectionTitle(i int) string {
	if i < len(m.B.Sections) {
		return m.B.Sections[i].Title
	}
	return ""
}

// NewPage parses the embedded templates and encodes b's section figures.
func NewPage(b *domain.Briefing) (*Page, error) {
	md := goldmark.New()
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"markdown": func(s string) (template.HTML, error) { return markdownHTML(md, s) },
		"inline":   func(s string) (template.HTML, error) { return inlineHTML(md, s) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "parse page templates")
	}

	figs := chart.BriefingFigures(b)
	encoded := map[string]chart.Figure{
		"topics":     figs.Topics,
		"trade":      figs.Trade,
		"investment": figs.Investment,
		"migration":  figs.Migration,
		"security":   figs.Security,
		"map":        figs.ImpactMap,
		"critical":   figs.Critical,
	}
	p := &Page{
		tmpl:     tmpl,
		briefing: b,
		mentions: b.Mentions(),
		figures:  make(map[string]template.JS, len(encoded)),
	}
	for id, fig := range encoded {
		raw, err := fig.JSON()
		if err != nil {
			return nil, goerr.Wrap(err, "encode section figure", goerr.V("figure", id))
		}
		p.figures[id] = template.JS(raw) //nolint:gosec // figure JSON is produced by encoding/json
	}

	imp := b.Implications
	p.panels = []panel{
		{ID: "trade", Tab: imp.Trade.Tab, Title: imp.Trade.Title, Notes: imp.Trade.Notes, Figure: p.figures["trade"]},
		{ID: "investment", Tab: imp.Investment.Tab, Title: imp.Investment.Title, Notes: imp.Investment.Notes, Figure: p.figures["investment"]},
		{ID: "migration", Tab: imp.Migration.Tab, Title: imp.Migration.Title, Notes: imp.Migration.Notes, Figure: p.figures["migration"]},
		{ID: "security", Tab: imp.Security.Tab, Title: imp.Security.Title, Notes: imp.Security.Notes, Figure: p.figures["security"]},
	}
	return p, nil
}

// Render writes the full dashboard for data to w.
func (p *Page) Render(w io.Writer, data PageData) error {
	radar := template.JS("null")
	if len(data.Radar) > 0 {
		radar = template.JS(data.Radar) //nolint:gosec // figure JSON is produced by encoding/json
	}
	model := pageModel{
		B:           p.briefing,
		Mentions:    p.mentions,
		Panels:      p.panels,
		Figures:     p.figures,
		Country:     data.Country,
		Countries:   data.Countries,
		Radar:       radar,
		Notice:      data.Notice,
		GeneratedAt: domain.Now().Format(timestampLayout),
	}

	// Buffered so a failed execute writes nothing.
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "layout.html", model); err != nil {
		return goerr.Wrap(err, "execute page template")
	}
	_, err := buf.WriteTo(w)
	return err
}

func markdownHTML(md goldmark.Markdown, s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return "", goerr.Wrap(err, "convert markdown")
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML by default
}

// inlineHTML renders a single markdown paragraph without the wrapping <p>.
func inlineHTML(md goldmark.Markdown, s string) (template.HTML, error) {
	h, err := markdownHTML(md, s)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(string(h))
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return template.HTML(out), nil //nolint:gosec // see markdownHTML
}
