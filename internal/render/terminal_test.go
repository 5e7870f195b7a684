package render_test

import (
	"bytes"
	"testing"

	"github.com/couchcryptid/latam-briefing-service/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Country(t *testing.T) {
	b, view := mexicoView(t)
	term, err := render.NewTerminal("notty", 100)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, term.Country(&buf, view, b.Countries.Recommendations))
	out := buf.String()

	assert.Contains(t, out, "Análisis de México")
	assert.Contains(t, out, "Comercio: Revisión arancelaria automotriz")
	assert.Contains(t, out, "Inversión: Nearshoring en manufactura")
	assert.Contains(t, out, "Seguridad")
	assert.Contains(t, out, "9.2")
	assert.Contains(t, out, "Recomendaciones")
}

func TestTerminal_Briefing(t *testing.T) {
	b, _ := mexicoView(t)
	term, err := render.NewTerminal("notty", 100)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, term.Briefing(&buf, b))
	out := buf.String()

	assert.Contains(t, out, b.Title)
	assert.Contains(t, out, "Revisión arancelaria")
	for _, m := range b.Mentions() {
		assert.Contains(t, out, m.Country)
	}
	assert.Contains(t, out, "Reunión FED")
	assert.Contains(t, out, b.Footer.DataCutoff)
}

func TestNewTerminal_UnknownStyle(t *testing.T) {
	_, err := render.NewTerminal("no-such-style.json", 80)
	assert.Error(t, err)
}
