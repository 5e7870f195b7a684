package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunValidate_Embedded(t *testing.T) {
	var out bytes.Buffer
	err := runValidate(&out, discardLogger(), observability.NewMetricsForTesting(), "")
	require.NoError(t, err, out.String())

	s := out.String()
	assert.Contains(t, s, "Source: embedded briefing.toml")
	assert.Contains(t, s, "Countries: 6, topics: 5, indicators: 6, events: 4")
	for _, name := range []string{"Decode and field ranges", "Country registry invariants", "Cross-dataset consistency", "Selection and projection"} {
		assert.Contains(t, s, name)
	}
	assert.NotContains(t, s, "FAIL")
	assert.Contains(t, s, "All validations passed.")
}

func TestRunValidate_BrokenFile(t *testing.T) {
	doc := strings.Replace(string(domain.EmbeddedBriefing()),
		"impact_values = [8.7, 9.2, 7.8, 6.5]", "impact_values = [8.7, 9.2, 7.8, 16.5]", 1)
	path := filepath.Join(t.TempDir(), "briefing.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var out bytes.Buffer
	err := runValidate(&out, discardLogger(), observability.NewMetricsForTesting(), path)

	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out.String(), "FAIL (1 errors)")
	assert.Contains(t, out.String(), "Validation FAILED.")
}

func TestRunValidate_CrossDatasetDuplicate(t *testing.T) {
	doc := strings.Replace(string(domain.EmbeddedBriefing()),
		`sector = "Infraestructura"`, `sector = "Tecnología"`, 1)
	path := filepath.Join(t.TempDir(), "briefing.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	var out bytes.Buffer
	err := runValidate(&out, discardLogger(), observability.NewMetricsForTesting(), path)

	require.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out.String(), `investment rows: duplicate "Tecnología"`)
}

func TestRunValidate_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := runValidate(&out, discardLogger(), observability.NewMetricsForTesting(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read briefing")
}

func TestRunShow_Briefing(t *testing.T) {
	var out bytes.Buffer
	err := runShow(&out, discardLogger(), observability.NewMetricsForTesting(), showOptions{style: "notty", width: 100})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Reporte Semanal EEUU - Latinoamérica")
}

func TestRunShow_Country(t *testing.T) {
	var out bytes.Buffer
	err := runShow(&out, discardLogger(), observability.NewMetricsForTesting(), showOptions{country: "Colombia", style: "notty", width: 100})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Análisis de Colombia")
	assert.Contains(t, out.String(), "Seguridad: Programas antinarcóticos")
}

func TestRunShow_UnknownCountry(t *testing.T) {
	var out bytes.Buffer
	err := runShow(&out, discardLogger(), observability.NewMetricsForTesting(), showOptions{country: "Atlantis", style: "notty", width: 100})
	require.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Empty(t, out.String())
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "show", "validate", "publish"} {
		assert.Contains(t, names, want)
	}
}
