package chart

import (
	"fmt"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
)

// Figures holds every section-level figure of the dashboard. The per-country
// radar is built separately because it follows the selection.
type Figures struct {
	Topics     Figure
	Trade      Figure
	Investment Figure
	Migration  Figure
	Security   Figure
	ImpactMap  Figure
	Critical   Figure
}

// BriefingFigures builds the static section figures of b.
func BriefingFigures(b *domain.Briefing) Figures {
	return Figures{
		Topics:     TopicsBar(b.Topics),
		Trade:      TradeBar(b.Implications.Trade),
		Investment: InvestmentBubble(b.Implications.Investment),
		Migration:  MigrationBubble(b.Implications.Migration),
		Security:   SecurityBar(b.Implications.Security),
		ImpactMap:  ImpactChoropleth(b.Countries.MapTitle, b.Mentions()),
		Critical:   CriticalBubble(b.Critical),
	}
}

// TopicsBar plots mentions per topic, coloured by potential impact.
func TopicsBar(s domain.TopicsSection) Figure {
	names := make([]string, len(s.Items))
	mentions := make([]float64, len(s.Items))
	impact := make([]float64, len(s.Items))
	text := make([]string, len(s.Items))
	for i, t := range s.Items {
		names[i] = t.Name
		mentions[i] = float64(t.Mentions)
		impact[i] = t.Impact
		text[i] = fmt.Sprint(t.Mentions)
	}
	return Figure{
		Data: []Trace{{
			Type: "bar",
			X:    names,
			Y:    mentions,
			Text: text,
			Marker: &Marker{
				Color:      impact,
				ColorScale: ContinuousScale,
				ShowScale:  ptr(true),
				ColorBar:   &ColorBar{Title: Title{Text: "Índice de<br>Impacto"}},
			},
		}},
		Layout: Layout{
			Title:       Title{Text: s.ChartTitle},
			Height:      400,
			PlotBGColor: PlotBackground,
			Font:        &Font{Family: FontFamily},
			Margin:      defaultMargin,
			XAxis:       &Axis{},
			YAxis:       &Axis{Title: Title{Text: "Número de menciones"}},
		},
	}
}

// TradeBar plots the expected percentage change per trade category on a
// diverging red-grey-blue scale.
func TradeBar(p domain.Panel[domain.TradeChange]) Figure {
	cats := make([]string, len(p.Rows))
	change := make([]float64, len(p.Rows))
	text := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		cats[i] = r.Category
		change[i] = r.ExpectedChangePct
		text[i] = fmt.Sprint(r.ExpectedChangePct)
	}
	return Figure{
		Data: []Trace{{
			Type:         "bar",
			X:            cats,
			Y:            change,
			Text:         text,
			TextTemplate: "%{text:.1f}%",
			TextPosition: "outside",
			Marker: &Marker{
				Color:      change,
				ColorScale: [][]any{{0, NegativeColor}, {0.5, NeutralColor}, {1, AccentColor}},
				ShowScale:  ptr(false),
			},
		}},
		Layout: Layout{
			Title:       Title{Text: p.ChartTitle},
			Height:      350,
			PlotBGColor: PlotBackground,
			Margin:      defaultMargin,
			XAxis:       &Axis{},
			YAxis:       &Axis{Title: Title{Text: "Cambio Esperado (%)"}},
		},
	}
}

// InvestmentBubble plots annual growth per sector with bubble area by amount invested.
func InvestmentBubble(p domain.Panel[domain.InvestmentSector]) Figure {
	sectors := make([]string, len(p.Rows))
	growth := make([]float64, len(p.Rows))
	size := make([]float64, len(p.Rows))
	for i, r := range p.Rows {
		sectors[i] = r.Sector
		growth[i] = float64(r.AnnualGrowthPct)
		size[i] = float64(r.InvestmentMUSD)
	}
	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "markers",
			X:    sectors,
			Y:    growth,
			Marker: &Marker{
				Color:      growth,
				ColorScale: ContinuousScale,
				ShowScale:  ptr(true),
				Size:       size,
				SizeMode:   "area",
				SizeRef:    sizeRef(size, 50),
			},
		}},
		Layout: Layout{
			Title:       Title{Text: p.ChartTitle},
			Height:      400,
			PlotBGColor: PlotBackground,
			Margin:      defaultMargin,
			XAxis:       &Axis{},
			YAxis:       &Axis{Title: Title{Text: "Crecimiento Anual (%)"}},
		},
	}
}

// MigrationBubble plots remittances per country with bubble area by migration impact.
func MigrationBubble(p domain.Panel[domain.MigrationFlow]) Figure {
	countries := make([]string, len(p.Rows))
	remit := make([]float64, len(p.Rows))
	impact := make([]float64, len(p.Rows))
	for i, r := range p.Rows {
		countries[i] = r.Country
		remit[i] = float64(r.RemittancesMUSD)
		impact[i] = float64(r.MigrationImpact)
	}
	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "markers",
			X:    countries,
			Y:    remit,
			Marker: &Marker{
				Color:      impact,
				ColorScale: ContinuousScale,
				ShowScale:  ptr(true),
				ColorBar:   &ColorBar{Title: Title{Text: "Índice de<br>Impacto"}},
				Size:       impact,
				SizeMode:   "area",
				SizeRef:    sizeRef(impact, 50),
			},
		}},
		Layout: Layout{
			Title:       Title{Text: p.ChartTitle},
			Height:      400,
			PlotBGColor: PlotBackground,
			Margin:      defaultMargin,
			XAxis:       &Axis{},
			YAxis:       &Axis{Title: Title{Text: "Remesas (Millones USD)"}},
		},
	}
}

// SecurityBar plots US funding per security area, coloured by cooperation index.
func SecurityBar(p domain.Panel[domain.SecurityArea]) Figure {
	areas := make([]string, len(p.Rows))
	funding := make([]float64, len(p.Rows))
	coop := make([]float64, len(p.Rows))
	text := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		areas[i] = r.Area
		funding[i] = float64(r.USFundingMUSD)
		coop[i] = float64(r.CooperationIndex)
		text[i] = fmt.Sprint(r.USFundingMUSD)
	}
	return Figure{
		Data: []Trace{{
			Type:         "bar",
			X:            areas,
			Y:            funding,
			Text:         text,
			TextTemplate: "$%{text}M",
			TextPosition: "outside",
			Marker: &Marker{
				Color:      coop,
				ColorScale: ContinuousScale,
				ShowScale:  ptr(true),
				ColorBar:   &ColorBar{Title: Title{Text: "Índice de<br>Cooperación"}},
			},
		}},
		Layout: Layout{
			Title:       Title{Text: p.ChartTitle},
			Height:      400,
			PlotBGColor: PlotBackground,
			Margin:      defaultMargin,
			XAxis:       &Axis{},
			YAxis:       &Axis{Title: Title{Text: "Financiamiento (Millones USD)"}},
		},
	}
}

// ImpactChoropleth shades each mentioned country by its impact score. The map
// window covers South America and stretches north far enough to include Mexico.
func ImpactChoropleth(title string, rows []domain.CountryMention) Figure {
	names := make([]string, len(rows))
	impact := make([]float64, len(rows))
	for i, r := range rows {
		names[i] = r.Country
		impact[i] = r.Impact
	}
	return Figure{
		Data: []Trace{{
			Type:         "choropleth",
			Locations:    names,
			LocationMode: "country names",
			Z:            impact,
			ColorScale:   ContinuousScale,
			ColorBar:     &ColorBar{Title: Title{Text: "Índice de<br>Impacto"}},
		}},
		Layout: Layout{
			Title:  Title{Text: title},
			Height: 500,
			Margin: defaultMargin,
			Geo: &Geo{
				Scope:   "south america",
				LatAxis: GeoAxis{Range: []float64{-60, 35}},
				LonAxis: GeoAxis{Range: []float64{-120, -30}},
			},
		},
	}
}

// CriticalBubble plots LATAM impact per monitored variable, sized by its current
// reading and labelled with the trend arrow. Categories get one trace each so
// the legend lists them in order of first appearance.
func CriticalBubble(s domain.CriticalSection) Figure {
	sizes := make([]float64, len(s.Indicators))
	for i, ind := range s.Indicators {
		sizes[i] = ind.CurrentValue
	}
	ref := sizeRef(sizes, 60)

	var traces []Trace
	index := map[string]int{}
	for _, ind := range s.Indicators {
		i, ok := index[ind.Category]
		if !ok {
			i = len(traces)
			index[ind.Category] = i
			traces = append(traces, Trace{
				Type:         "scatter",
				Mode:         "markers+text",
				Name:         ind.Category,
				LegendGroup:  ind.Category,
				TextPosition: "middle center",
				Marker: &Marker{
					Color:    boldPalette[i%len(boldPalette)],
					SizeMode: "area",
					SizeRef:  ref,
				},
			})
		}
		t := &traces[i]
		t.X = append(t.X, ind.Area)
		t.Y = append(t.Y, ind.LatamImpact)
		t.Text = append(t.Text, ind.Trend.Symbol())
		t.HoverText = append(t.HoverText, ind.Area)
		t.Marker.Size = append(t.Marker.Size, ind.CurrentValue)
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:       Title{Text: s.ChartTitle},
			Height:      450,
			PlotBGColor: PlotBackground,
			Margin:      defaultMargin,
			XAxis:       &Axis{},
			YAxis:       &Axis{Title: Title{Text: "Índice de Impacto LATAM"}},
		},
	}
}
