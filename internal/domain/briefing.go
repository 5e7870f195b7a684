package domain

import "strings"

// Briefing is the complete weekly US–LATAM report. Every value is a fixed,
// illustrative constant; nothing here is computed from upstream data.
type Briefing struct {
	Title        string           `toml:"title" json:"title"`
	ShortTitle   string           `toml:"short_title" json:"short_title"`
	Period       string           `toml:"period" json:"period"`
	Summary      string           `toml:"summary" json:"summary"`
	Contact      Contact          `toml:"contact" json:"contact"`
	Sections     []Section        `toml:"section" json:"sections"`
	Topics       TopicsSection    `toml:"topics" json:"topics"`
	Implications Implications     `toml:"implications" json:"implications"`
	Countries    CountriesSection `toml:"countries" json:"countries"`
	Critical     CriticalSection  `toml:"critical" json:"critical"`
	Footer       Footer           `toml:"footer" json:"footer"`
}

type Contact struct {
	Email string `toml:"email" json:"email"`
	Phone string `toml:"phone" json:"phone"`
}

// Section is one entry of the sidebar table of contents.
type Section struct {
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
}

// Anchor returns the in-page fragment the sidebar links to: lower case,
// spaces turned into dashes, dots dropped.
func (s Section) Anchor() string {
	a := strings.ToLower(s.Title)
	a = strings.ReplaceAll(a, " ", "-")
	return strings.ReplaceAll(a, ".", "")
}

// Note is a headed block of markdown narrative.
type Note struct {
	Heading string `toml:"heading" json:"heading"`
	Body    string `toml:"body" json:"body"`
}

// TopicsSection holds section 1, the week's main policy topics.
type TopicsSection struct {
	Heading    string   `toml:"heading" json:"heading"`
	ChartTitle string   `toml:"chart_title" json:"chart_title"`
	Items      []Topic  `toml:"item" json:"items"`
	Findings   []string `toml:"findings" json:"findings"`
	Analysis   string   `toml:"analysis" json:"analysis"`
}

// Topic is one policy theme with its mention count and 0-10 impact index.
type Topic struct {
	Name     string  `toml:"name" json:"name"`
	Mentions int     `toml:"mentions" json:"mentions"`
	Impact   float64 `toml:"impact" json:"impact"`
}

// Panel is one tab of section 2: a chart-backed table plus narrative notes.
type Panel[R any] struct {
	Tab        string `toml:"tab" json:"tab"`
	Title      string `toml:"title" json:"title"`
	ChartTitle string `toml:"chart_title" json:"chart_title"`
	Notes      []Note `toml:"note" json:"notes"`
	Rows       []R    `toml:"row" json:"rows"`
}

// Implications holds section 2 with one panel per impact category.
type Implications struct {
	Heading    string                  `toml:"heading" json:"heading"`
	Trade      Panel[TradeChange]      `toml:"trade" json:"trade"`
	Investment Panel[InvestmentSector] `toml:"investment" json:"investment"`
	Migration  Panel[MigrationFlow]    `toml:"migration" json:"migration"`
	Security   Panel[SecurityArea]     `toml:"security" json:"security"`
}

type TradeChange struct {
	Category          string  `toml:"category" json:"category"`
	ExpectedChangePct float64 `toml:"expected_change_pct" json:"expected_change_pct"`
}

type InvestmentSector struct {
	Sector          string `toml:"sector" json:"sector"`
	InvestmentMUSD  int    `toml:"investment_musd" json:"investment_musd"`
	AnnualGrowthPct int    `toml:"annual_growth_pct" json:"annual_growth_pct"`
}

// MigrationFlow pairs remittances with a 1-10 migration policy impact score.
type MigrationFlow struct {
	Country         string `toml:"country" json:"country"`
	RemittancesMUSD int    `toml:"remittances_musd" json:"remittances_musd"`
	MigrationImpact int    `toml:"migration_impact" json:"migration_impact"`
}

// SecurityArea pairs US funding with a 1-10 cooperation index.
type SecurityArea struct {
	Area             string `toml:"area" json:"area"`
	CooperationIndex int    `toml:"cooperation_index" json:"cooperation_index"`
	USFundingMUSD    int    `toml:"us_funding_musd" json:"us_funding_musd"`
}

// CountriesSection holds section 3. Entries carry both the mention-table row
// and the detail record for each country, in selector order.
type CountriesSection struct {
	Heading         string         `toml:"heading" json:"heading"`
	MapTitle        string         `toml:"map_title" json:"map_title"`
	TableTitle      string         `toml:"table_title" json:"table_title"`
	SelectorLabel   string         `toml:"selector_label" json:"selector_label"`
	Recommendations []string       `toml:"recommendations" json:"recommendations"`
	Entries         []CountryEntry `toml:"country" json:"entries"`
}

// CountryEntry is the on-disk shape of one country.
type CountryEntry struct {
	Name             string    `toml:"name" json:"name"`
	Mentions         int       `toml:"mentions" json:"mentions"`
	Areas            string    `toml:"areas" json:"areas"`
	Impact           float64   `toml:"impact" json:"impact"`
	Trend            Trend     `toml:"trend" json:"trend"`
	Overview         string    `toml:"overview" json:"overview"`
	KeyAreas         []string  `toml:"key_areas" json:"key_areas"`
	ImpactCategories []string  `toml:"impact_categories" json:"impact_categories"`
	ImpactValues     []float64 `toml:"impact_values" json:"impact_values"`
}

// CountryMention is one row of the "countries mentioned this week" table.
type CountryMention struct {
	Country  string  `json:"country"`
	Mentions int     `json:"mentions"`
	KeyAreas string  `json:"key_areas"`
	Impact   float64 `json:"impact"`
	Trend    Trend   `json:"trend"`
}

func (e CountryEntry) mention() CountryMention {
	return CountryMention{
		Country:  e.Name,
		Mentions: e.Mentions,
		KeyAreas: e.Areas,
		Impact:   e.Impact,
		Trend:    e.Trend,
	}
}

func (e CountryEntry) record() CountryRecord {
	return CountryRecord{
		Name:             e.Name,
		Overview:         e.Overview,
		KeyAreas:         e.KeyAreas,
		ImpactCategories: e.ImpactCategories,
		ImpactValues:     e.ImpactValues,
	}
}

// Mentions returns the country table rows in display order.
func (b *Briefing) Mentions() []CountryMention {
	out := make([]CountryMention, len(b.Countries.Entries))
	for i, e := range b.Countries.Entries {
		out[i] = e.mention()
	}
	return out
}

// Records returns the country detail records in display order.
func (b *Briefing) Records() []CountryRecord {
	out := make([]CountryRecord, len(b.Countries.Entries))
	for i, e := range b.Countries.Entries {
		out[i] = e.record()
	}
	return out
}

// Registry builds the country registry from the briefing's entries.
func (b *Briefing) Registry() (*Registry, error) {
	return NewRegistry(b.Records()...)
}

// CriticalSection holds section 4: indicators to monitor and upcoming dates.
type CriticalSection struct {
	Heading       string              `toml:"heading" json:"heading"`
	ChartTitle    string              `toml:"chart_title" json:"chart_title"`
	CalendarTitle string              `toml:"calendar_title" json:"calendar_title"`
	Indicators    []CriticalIndicator `toml:"indicator" json:"indicators"`
	Events        []CalendarEvent     `toml:"event" json:"events"`
	Analysis      string              `toml:"analysis" json:"analysis"`
}

type CriticalIndicator struct {
	Area         string  `toml:"area" json:"area"`
	CurrentValue float64 `toml:"current_value" json:"current_value"`
	Trend        Trend   `toml:"trend" json:"trend"`
	LatamImpact  float64 `toml:"latam_impact" json:"latam_impact"`
	Category     string  `toml:"category" json:"category"`
}

type CalendarEvent struct {
	Date        string `toml:"date" json:"date"`
	Description string `toml:"description" json:"description"`
}

type Footer struct {
	PreparedBy string `toml:"prepared_by" json:"prepared_by"`
	DataCutoff string `toml:"data_cutoff" json:"data_cutoff"`
	Disclaimer string `toml:"disclaimer" json:"disclaimer"`
}
