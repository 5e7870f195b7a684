package domain

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// Registry is the immutable, ordered mapping from country name to its briefing record.
// It is built once at startup; there is no API to change it afterwards.
type Registry struct {
	order   []string
	records map[string]CountryRecord
}

// NewRegistry validates the records and returns a registry preserving their order.
func NewRegistry(records ...CountryRecord) (*Registry, error) {
	reg := &Registry{
		order:   make([]string, 0, len(records)),
		records: make(map[string]CountryRecord, len(records)),
	}
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, goerr.Wrap(err, "build registry", goerr.V(IndexKey, i))
		}
		if _, dup := reg.records[rec.Name]; dup {
			return nil, goerr.Wrap(ErrInvalidRecord, "duplicate country",
				goerr.V(CountryKey, rec.Name), goerr.V(IndexKey, i))
		}
		reg.order = append(reg.order, rec.Name)
		reg.records[rec.Name] = rec.clone()
	}
	return reg, nil
}

// Get returns the record for name, or ErrNotFound.
func (r *Registry) Get(name string) (CountryRecord, error) {
	rec, ok := r.records[name]
	if !ok {
		return CountryRecord{}, goerr.Wrap(ErrNotFound, "lookup country", goerr.V(CountryKey, name))
	}
	return rec.clone(), nil
}

// Has reports whether name is a registry key.
func (r *Registry) Has(name string) bool {
	_, ok := r.records[name]
	return ok
}

// Keys returns the country names in display order. Each call returns a fresh slice.
func (r *Registry) Keys() []string {
	return slices.Clone(r.order)
}

// Len returns the number of countries.
func (r *Registry) Len() int {
	return len(r.order)
}
