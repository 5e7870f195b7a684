package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	httpadapter "github.com/couchcryptid/latam-briefing-service/internal/adapter/http"
	"github.com/couchcryptid/latam-briefing-service/internal/chart"
	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/pipeline"
	"github.com/couchcryptid/latam-briefing-service/internal/render"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, registry *domain.Registry) (*httpadapter.Server, *observability.Metrics) {
	t.Helper()
	b, err := domain.DefaultBriefing()
	require.NoError(t, err)
	if registry == nil {
		registry, err = domain.DefaultRegistry()
		require.NoError(t, err)
	}
	page, err := render.NewPage(b)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetricsForTesting()
	srv := httpadapter.NewServer(":0", httpadapter.Dependencies{
		Pipeline: pipeline.New(registry, logger, metrics),
		Briefing: b,
		Page:     page,
		Radar:    chart.NewRadarCache(8, metrics),
		Logger:   logger,
		Metrics:  metrics,
	})
	return srv, metrics
}

func get(srv http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	srv.ServeHTTP(rec, req)
	return rec
}

func countryCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "country" {
			return c
		}
	}
	return nil
}

func TestDashboard_DefaultSelection(t *testing.T) {
	srv, metrics := newTestServer(t, nil)

	rec := get(srv, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `<option value="México" selected>`)
	assert.Contains(t, rec.Body.String(), "Análisis de México")
	assert.Nil(t, countryCookie(rec))
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PageRenders.WithLabelValues("html")), 1e-9)
}

func TestDashboard_SelectSetsCookie(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/?country="+url.QueryEscape("Perú"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<option value="Perú" selected>`)
	assert.Contains(t, rec.Body.String(), "Minería: Inversiones en cobre y litio")

	c := countryCookie(rec)
	require.NotNil(t, c)
	name, err := url.QueryUnescape(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "Perú", name)
}

func TestDashboard_CookieCarriesSelection(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/", &http.Cookie{Name: "country", Value: url.QueryEscape("Chile")})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Análisis de Chile")
}

func TestDashboard_InvalidSelectionKeepsPrevious(t *testing.T) {
	srv, metrics := newTestServer(t, nil)

	rec := get(srv, "/?country=Atlantis", &http.Cookie{Name: "country", Value: url.QueryEscape("Brasil")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="notice"`)
	assert.Contains(t, body, "Atlantis")
	assert.Contains(t, body, "Análisis de Brasil")
	assert.Contains(t, body, `<option value="Brasil" selected>`)
	assert.Nil(t, countryCookie(rec), "cookie must not change on a rejected selection")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.Selections.WithLabelValues("rejected")), 1e-9)
}

func TestDashboard_StaleCookieFallsBack(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/", &http.Cookie{Name: "country", Value: "Atlantis"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Análisis de México")
}

func TestAPI_Countries(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/api/countries")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"México", "Brasil", "Colombia", "Chile", "Argentina", "Perú"}, body["countries"])
}

func TestAPI_Country(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/api/countries/"+url.PathEscape("México"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var view pipeline.CountryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "México", view.Country)
	assert.Equal(t, []string{"Comercio", "Inversión", "Migración", "Seguridad"}, view.ImpactCategories)
	assert.Equal(t, []float64{8.7, 9.2, 7.8, 6.5}, view.ImpactValues)
	assert.Equal(t, []string{
		"Comercio: Revisión arancelaria automotriz",
		"Migración: Controles fronterizos reforzados",
		"Inversión: Nearshoring en manufactura",
	}, view.KeyAreas)
}

func TestAPI_CountryNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/api/countries/Atlantis")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Atlantis")
}

func TestAPI_Briefing(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/api/briefing")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Period    string `json:"period"`
		Countries struct {
			Entries []struct {
				Name  string `json:"name"`
				Trend string `json:"trend"`
			} `json:"entries"`
		} `json:"countries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Semana del 01 al 7 de marzo, 2025", body.Period)
	require.Len(t, body.Countries.Entries, 6)
	assert.Equal(t, "↑", body.Countries.Entries[0].Trend)
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenRegistryEmpty(t *testing.T) {
	empty, err := domain.NewRegistry()
	require.NoError(t, err)
	srv, _ := newTestServer(t, empty)

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
