package chart

import (
	"slices"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
)

// ImpactRadar draws a country's impact vector as a filled polygon on a 0-10
// radial axis. The first point is repeated at the end to close the shape.
func ImpactRadar(view pipeline.CountryView) Figure {
	r := slices.Clone(view.ImpactValues)
	theta := slices.Clone(view.ImpactCategories)
	if len(r) > 0 && len(theta) > 0 {
		r = append(r, r[0])
		theta = append(theta, theta[0])
	}
	return Figure{
		Data: []Trace{{
			Type:  "scatterpolar",
			Name:  "Impacto",
			R:     r,
			Theta: theta,
			Fill:  "toself",
			Line:  &Line{Color: AccentColor},
		}},
		Layout: Layout{
			Title:  Title{Text: "Dimensiones de impacto para " + view.Country},
			Height: 400,
			Margin: defaultMargin,
			Polar: &Polar{RadialAxis: Axis{
				Visible: ptr(true),
				Range:   []float64{domain.MinImpact, domain.MaxImpact},
			}},
		},
	}
}
