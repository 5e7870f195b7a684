package pipeline

import (
	"slices"

	"github.com/couchcryptid/latam-briefing-service/internal/domain"
)

// CountryView bundles the three independent projections of one country record
// handed to the rendering layer.
type CountryView struct {
	Country          string    `json:"country"`
	Overview         string    `json:"overview"`
	ImpactCategories []string  `json:"impact_categories"`
	ImpactValues     []float64 `json:"impact_values"`
	KeyAreas         []string  `json:"key_areas"`
}

// Project applies every projection to rec.
func Project(rec domain.CountryRecord) CountryView {
	categories, values := ProjectImpactVector(rec)
	return CountryView{
		Country:          rec.Name,
		Overview:         ProjectOverview(rec),
		ImpactCategories: categories,
		ImpactValues:     values,
		KeyAreas:         ProjectKeyAreas(rec),
	}
}

// ProjectOverview passes the overview through untouched; markup is the renderer's concern.
func ProjectOverview(rec domain.CountryRecord) string {
	return rec.Overview
}

// ProjectImpactVector returns the aligned category and value sequences as stored.
// Values are neither clamped nor re-validated, and the radar polygon is not
// closed here.
func ProjectImpactVector(rec domain.CountryRecord) ([]string, []float64) {
	return slices.Clone(rec.ImpactCategories), slices.Clone(rec.ImpactValues)
}

// ProjectKeyAreas returns the key areas in display order.
func ProjectKeyAreas(rec domain.CountryRecord) []string {
	return slices.Clone(rec.KeyAreas)
}
