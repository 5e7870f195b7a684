package domain

import "github.com/m-mizutani/goerr/v2"

// Trend is the week-over-week direction shown next to a metric.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// ParseTrend accepts either the arrow symbol or its name.
func ParseTrend(s string) (Trend, error) {
	switch s {
	case "↑", "up":
		return TrendUp, nil
	case "→", "flat":
		return TrendFlat, nil
	case "↓", "down":
		return TrendDown, nil
	}
	return TrendFlat, goerr.New("unknown trend", goerr.V("trend", s))
}

// Symbol returns the arrow used in tables.
func (t Trend) Symbol() string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	default:
		return "→"
	}
}

func (t Trend) String() string { return t.Symbol() }

// MarshalText encodes the trend as its arrow symbol.
func (t Trend) MarshalText() ([]byte, error) {
	return []byte(t.Symbol()), nil
}

// UnmarshalText decodes an arrow symbol or trend name.
func (t *Trend) UnmarshalText(b []byte) error {
	v, err := ParseTrend(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
