package domain

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// ImpactCategory labels one axis of a country's impact vector.
type ImpactCategory string

const (
	ImpactTrade      ImpactCategory = "Comercio"
	ImpactInvestment ImpactCategory = "Inversión"
	ImpactMigration  ImpactCategory = "Migración"
	ImpactSecurity   ImpactCategory = "Seguridad"
)

// ImpactDimensions is the number of axes every impact vector must carry.
const ImpactDimensions = 4

// Impact scores live on a closed 0-10 scale.
const (
	MinImpact = 0.0
	MaxImpact = 10.0
)

// ImpactCategories returns the canonical category order used by the briefing.
func ImpactCategories() []ImpactCategory {
	return []ImpactCategory{ImpactTrade, ImpactInvestment, ImpactMigration, ImpactSecurity}
}

// CountryRecord is one country's weekly briefing detail.
//
// Overview may contain markdown emphasis; it is opaque to the domain layer.
// KeyAreas is in display order and may contain duplicates. ImpactCategories
// and ImpactValues are positionally aligned.
type CountryRecord struct {
	Name             string    `json:"name"`
	Overview         string    `json:"overview"`
	KeyAreas         []string  `json:"key_areas"`
	ImpactCategories []string  `json:"impact_categories"`
	ImpactValues     []float64 `json:"impact_values"`
}

// Validate checks the record invariants enforced when the registry is built.
func (r CountryRecord) Validate() error {
	if r.Name == "" {
		return goerr.Wrap(ErrInvalidRecord, "country name is required")
	}
	if len(r.ImpactCategories) != len(r.ImpactValues) {
		return goerr.Wrap(ErrInvalidRecord, "impact categories and values are not aligned",
			goerr.V(CountryKey, r.Name),
			goerr.V("categories", len(r.ImpactCategories)),
			goerr.V("values", len(r.ImpactValues)))
	}
	if len(r.ImpactValues) != ImpactDimensions {
		return goerr.Wrap(ErrInvalidRecord, "impact vector must have exactly 4 dimensions",
			goerr.V(CountryKey, r.Name), goerr.V("dimensions", len(r.ImpactValues)))
	}
	for i, label := range r.ImpactCategories {
		if label == "" {
			return goerr.Wrap(ErrInvalidRecord, "impact category label is empty",
				goerr.V(CountryKey, r.Name), goerr.V(IndexKey, i))
		}
		if slices.Contains(r.ImpactCategories[:i], label) {
			return goerr.Wrap(ErrInvalidRecord, "duplicate impact category",
				goerr.V(CountryKey, r.Name), goerr.V("category", label))
		}
	}
	for i, v := range r.ImpactValues {
		if v < MinImpact || v > MaxImpact {
			return goerr.Wrap(ErrInvalidRecord, "impact value out of range",
				goerr.V(CountryKey, r.Name), goerr.V(IndexKey, i), goerr.V("value", v))
		}
	}
	return nil
}

// clone returns a deep copy so registry state cannot be mutated through a returned record.
func (r CountryRecord) clone() CountryRecord {
	r.KeyAreas = slices.Clone(r.KeyAreas)
	r.ImpactCategories = slices.Clone(r.ImpactCategories)
	r.ImpactValues = slices.Clone(r.ImpactValues)
	return r
}
