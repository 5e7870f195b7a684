package domain

import "errors"

// Sentinel errors for the briefing registry and country selection.
var (
	// ErrNotFound is returned when a country key is absent from the registry.
	ErrNotFound = errors.New("country not found")

	// ErrInvalidSelection is returned when a selection names a country outside
	// the registry. The previous selection is left unchanged.
	ErrInvalidSelection = errors.New("invalid country selection")

	// ErrInvalidRecord is returned when a country record breaks a registry invariant.
	ErrInvalidRecord = errors.New("invalid country record")

	// ErrInvalidBriefing is returned when the embedded briefing dataset fails validation.
	ErrInvalidBriefing = errors.New("invalid briefing")
)

// Context keys for error values
const (
	CountryKey = "country"
	IndexKey   = "index"
	FieldKey   = "field"
)
