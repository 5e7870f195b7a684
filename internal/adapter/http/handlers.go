package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/couchcryptid/latam-briefing-service/internal/render"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
)

const (
	countryParam  = "country"
	countryCookie = "country"
	cookieMaxAge  = 30 * 24 * 60 * 60
)

// handleDashboard renders the page for the client's selection. The selection
// lives in the country cookie; ?country= changes it. A rejected change keeps
// the previous country, answers 400, and leaves the cookie alone.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	p := s.deps.Pipeline

	sel, err := p.NewSelection(s.deps.DefaultCountry)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if c, err := r.Cookie(countryCookie); err == nil {
		if name, err := url.QueryUnescape(c.Value); err == nil && name != sel.Country() {
			// A stale cookie falls back to the default selection.
			_ = p.Select(&sel, name)
		}
	}

	status := http.StatusOK
	var notice string
	if q := r.URL.Query(); q.Has(countryParam) {
		requested := q.Get(countryParam)
		if err := p.Select(&sel, requested); err != nil {
			status = statusFor(err)
			notice = fmt.Sprintf("País no disponible: %q. Se mantiene la selección de %s.", requested, sel.Country())
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     countryCookie,
				Value:    url.QueryEscape(sel.Country()),
				Path:     "/",
				MaxAge:   cookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}

	view, err := p.View(sel)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	radar, err := s.deps.Radar.RadarJSON(view)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = s.deps.Page.Render(&buf, render.PageData{
		Country:   view,
		Countries: p.Countries(),
		Radar:     radar,
		Notice:    notice,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.deps.Metrics.PageRenders.WithLabelValues("html").Inc()
	s.deps.Metrics.RenderDuration.Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleCountries(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string][]string{
		"countries": s.deps.Pipeline.Countries(),
	})
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed country name")
		return
	}

	view, err := s.deps.Pipeline.Lookup(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("country %q not found", name))
			return
		}
		s.fail(w, r, err)
		return
	}

	s.deps.Metrics.PageRenders.WithLabelValues("json").Inc()
	sharedobs.WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleBriefing(w http.ResponseWriter, _ *http.Request) {
	s.deps.Metrics.PageRenders.WithLabelValues("json").Inc()
	sharedobs.WriteJSON(w, http.StatusOK, s.deps.Briefing)
}

// fail logs err and answers with the status its sentinel maps to.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logger.Error("request failed", append(observability.ErrAttrs(err), "path", r.URL.Path, "status", status)...)
	writeError(w, status, http.StatusText(status))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
