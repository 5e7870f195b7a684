package chart_test

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/latam-briefing-service/internal/chart"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpactRadar_ClosesPolygon(t *testing.T) {
	view := pipeline.CountryView{
		Country:          "México",
		ImpactCategories: []string{"Comercio", "Inversión", "Migración", "Seguridad"},
		ImpactValues:     []float64{8.7, 9.2, 7.8, 6.5},
	}

	fig := chart.ImpactRadar(view)

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "scatterpolar", tr.Type)
	assert.Equal(t, []float64{8.7, 9.2, 7.8, 6.5, 8.7}, tr.R)
	assert.Equal(t, []string{"Comercio", "Inversión", "Migración", "Seguridad", "Comercio"}, tr.Theta)
	assert.Equal(t, "toself", tr.Fill)
	assert.Equal(t, []float64{0, 10}, fig.Layout.Polar.RadialAxis.Range)
	assert.Equal(t, "Dimensiones de impacto para México", fig.Layout.Title.Text)

	// The view itself stays open.
	assert.Len(t, view.ImpactValues, 4)
}

func TestImpactRadar_EmptyVector(t *testing.T) {
	fig := chart.ImpactRadar(pipeline.CountryView{Country: "X"})
	assert.Empty(t, fig.Data[0].R)
}

func TestBriefingFigures(t *testing.T) {
	b, err := domain.DefaultBriefing()
	require.NoError(t, err)

	figs := chart.BriefingFigures(b)

	assert.Equal(t, []string{"Revisión arancelaria", "Política energética", "Migración", "Seguridad regional", "Inversión tecnológica"}, figs.Topics.Data[0].X)
	assert.Equal(t, []float64{78, 65, 52, 45, 32}, figs.Topics.Data[0].Y)

	assert.Equal(t, "%{text:.1f}%", figs.Trade.Data[0].TextTemplate)
	assert.Equal(t, []float64{3.5, -1.2, 0.8, 4.7, 2.1}, figs.Trade.Data[0].Y)

	assert.Equal(t, "$%{text}M", figs.Security.Data[0].TextTemplate)

	mapTrace := figs.ImpactMap.Data[0]
	assert.Equal(t, "choropleth", mapTrace.Type)
	assert.Equal(t, "country names", mapTrace.LocationMode)
	assert.Equal(t, []string{"México", "Brasil", "Colombia", "Chile", "Argentina", "Perú"}, mapTrace.Locations)
	assert.Equal(t, []float64{-60, 35}, figs.ImpactMap.Layout.Geo.LatAxis.Range)
}

func TestCriticalBubble_TracePerCategory(t *testing.T) {
	b, err := domain.DefaultBriefing()
	require.NoError(t, err)

	fig := chart.CriticalBubble(b.Critical)

	names := make([]string, len(fig.Data))
	for i, tr := range fig.Data {
		names[i] = tr.Name
	}
	assert.Equal(t, []string{"Financiero", "Económico", "Comercial", "Social", "Regulatorio"}, names)

	economic := fig.Data[1]
	assert.Equal(t, []string{"Precios de commodities", "Estímulos fiscales"}, economic.X)
	assert.Equal(t, []string{"→", "↓"}, economic.Text)
	assert.Equal(t, []float64{102.3, 38}, economic.Marker.Size)
}

func TestFigure_JSON(t *testing.T) {
	fig := chart.ImpactRadar(pipeline.CountryView{
		Country:          "Perú",
		ImpactCategories: []string{"Comercio"},
		ImpactValues:     []float64{6.2},
	})

	raw, err := fig.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	data := decoded["data"].([]any)
	assert.Equal(t, "scatterpolar", data[0].(map[string]any)["type"])
	assert.Contains(t, string(raw), `"fill":"toself"`)
}
