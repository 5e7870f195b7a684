package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/m-mizutani/goerr/v2"
)

var (
	accent = lipgloss.Color("#0078D4")
	muted  = lipgloss.Color("#57606a")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	headerCell   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell     = lipgloss.NewStyle().Padding(0, 1)
)

// Terminal renders the briefing for a terminal: tables through lipgloss,
// narrative markdown through glamour.
type Terminal struct {
	md *glamour.TermRenderer
}

// NewTerminal builds a renderer. style is a glamour standard style name
// ("dark", "light", "notty"); width is the word-wrap column.
func NewTerminal(style string, width int) (*Terminal, error) {
	md, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "create markdown renderer", goerr.V("style", style))
	}
	return &Terminal{md: md}, nil
}

// Briefing writes the whole report.
func (t *Terminal) Briefing(w io.Writer, b *domain.Briefing) error {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(b.Title) + "\n")
	sb.WriteString(mutedStyle.Render(b.Period) + "\n")

	if err := t.markdown(&sb, b.Summary); err != nil {
		return err
	}

	sb.WriteString(headingStyle.Render(b.Topics.Heading) + "\n")
	sb.WriteString(topicsTable(b.Topics.Items) + "\n")
	if err := t.markdown(&sb, bulletList(b.Topics.Findings)); err != nil {
		return err
	}

	sb.WriteString(headingStyle.Render(b.Countries.Heading) + "\n")
	sb.WriteString(mentionsTable(b.Mentions()) + "\n")

	sb.WriteString(headingStyle.Render(b.Critical.Heading) + "\n")
	sb.WriteString(indicatorsTable(b.Critical.Indicators) + "\n")
	sb.WriteString(headingStyle.Render(b.Critical.CalendarTitle) + "\n")
	for _, e := range b.Critical.Events {
		fmt.Fprintf(&sb, "  %s  %s\n", titleStyle.Render(e.Date), e.Description)
	}

	sb.WriteString("\n" + mutedStyle.Render(b.Footer.PreparedBy+" · "+b.Footer.DataCutoff) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Country writes one country's projections followed by the fixed recommendations.
func (t *Terminal) Country(w io.Writer, view pipeline.CountryView, recommendations []string) error {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Análisis de "+view.Country) + "\n")
	if err := t.markdown(&sb, view.Overview); err != nil {
		return err
	}

	sb.WriteString(headingStyle.Render("Dimensiones de impacto") + "\n")
	sb.WriteString(impactTable(view) + "\n")

	sb.WriteString(headingStyle.Render("Áreas clave") + "\n")
	if err := t.markdown(&sb, bulletList(view.KeyAreas)); err != nil {
		return err
	}

	sb.WriteString(headingStyle.Render("Recomendaciones") + "\n")
	if err := t.markdown(&sb, bulletList(recommendations)); err != nil {
		return err
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Terminal) markdown(sb *strings.Builder, md string) error {
	out, err := t.md.Render(md)
	if err != nil {
		return goerr.Wrap(err, "render markdown")
	}
	sb.WriteString(out)
	return nil
}

func bulletList(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	return sb.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
}

func topicsTable(items []domain.Topic) string {
	tbl := newTable("Tema", "Menciones", "Impacto")
	for _, it := range items {
		tbl.Row(it.Name, strconv.Itoa(it.Mentions), formatScore(it.Impact))
	}
	return tbl.Render()
}

func mentionsTable(rows []domain.CountryMention) string {
	tbl := newTable("País", "Menciones", "Áreas clave", "Impacto", "Tendencia")
	for _, r := range rows {
		tbl.Row(r.Country, strconv.Itoa(r.Mentions), r.KeyAreas, formatScore(r.Impact), r.Trend.Symbol())
	}
	return tbl.Render()
}

func indicatorsTable(rows []domain.CriticalIndicator) string {
	tbl := newTable("Variable", "Valor", "Tendencia", "Impacto LATAM", "Categoría")
	for _, r := range rows {
		tbl.Row(r.Area, strconv.FormatFloat(r.CurrentValue, 'f', -1, 64), r.Trend.Symbol(), formatScore(r.LatamImpact), r.Category)
	}
	return tbl.Render()
}

// impactTable lists each dimension with a 0-10 bar.
func impactTable(view pipeline.CountryView) string {
	tbl := newTable("Dimensión", "Valor", "")
	for i, cat := range view.ImpactCategories {
		v := view.ImpactValues[i]
		tbl.Row(cat, formatScore(v), impactBar(v))
	}
	return tbl.Render()
}

func impactBar(v float64) string {
	n := int(math.Round(min(max(v, domain.MinImpact), domain.MaxImpact)))
	return lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", n)) +
		mutedStyle.Render(strings.Repeat("░", int(domain.MaxImpact)-n))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
