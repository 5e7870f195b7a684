// Package domain models the weekly US–LATAM policy briefing.
//
// # Data Source
//
// The briefing is a fixed, illustrative dataset authored in briefing.toml and
// embedded in the binary. It is decoded and validated exactly once per process
// (DefaultBriefing); no value is fetched or computed at runtime.
//
// # Country Registry
//
// Each country carries a narrative overview (markdown emphasis allowed), an
// ordered list of key areas, and a four-axis impact vector:
//
//	Comercio, Inversión, Migración, Seguridad  →  e.g. México [8.7 9.2 7.8 6.5]
//
// Scores sit on a closed 0-10 scale. The registry (NewRegistry) rejects records
// whose category and value lists differ in length, that do not carry exactly
// four dimensions, or whose scores fall outside the scale. Keys keep the
// authored display order, which is also the order of the country selector and
// the "countries mentioned" table.
//
// # Selection
//
// A Selection names the country currently being viewed. It starts on the first
// registry key and only moves on a successful Set; an unknown name returns
// ErrInvalidSelection and leaves it where it was.
package domain
