package domain

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Selection tracks which country's record is currently being viewed.
// It is an explicit value owned by whoever drives the interaction (an HTTP
// request, a CLI invocation); nothing in this package holds one globally.
type Selection struct {
	country   string
	changedAt time.Time
}

// NewSelection returns a selection on the first country in display order.
// An empty registry has nothing to select and yields ErrNotFound.
func NewSelection(reg *Registry) (Selection, error) {
	if reg.Len() == 0 {
		return Selection{}, goerr.Wrap(ErrNotFound, "registry is empty")
	}
	return Selection{country: reg.order[0], changedAt: clock.Now()}, nil
}

// Set moves the selection to name. When name is not a registry key it returns
// ErrInvalidSelection and the selection keeps its previous value.
func (s *Selection) Set(reg *Registry, name string) error {
	if !reg.Has(name) {
		return goerr.Wrap(ErrInvalidSelection, "select country",
			goerr.V(CountryKey, name), goerr.V("current", s.country))
	}
	s.country = name
	s.changedAt = clock.Now()
	return nil
}

// Country returns the selected country key.
func (s Selection) Country() string { return s.country }

// ChangedAt returns when the selection last changed.
func (s Selection) ChangedAt() time.Time { return s.changedAt }
