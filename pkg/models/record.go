package models

// Record is one row of the integrated dataset, keyed by (CountryCode, Year)
type Record struct {
	CountryCode  string  `json:"country_code"`
	CountryName  string  `json:"country_name"`
	Year         int     `json:"year"`
	UseKWh       float64 `json:"electricity_use_kwh_per_capita"`
	RenewablePct float64 `json:"renewable_electricity_percent"`
	LossesPct    float64 `json:"electricity_losses_pct"`
}

// KPI holds the mean of each indicator over a filtered selection
type KPI struct {
	MeanUseKWh       float64 `json:"mean_electricity_use_kwh_per_capita"`
	MeanRenewablePct float64 `json:"mean_renewable_electricity_percent"`
	MeanLossesPct    float64 `json:"mean_electricity_losses_pct"`
}

// RankEntry is one country's position in a single-year consumption ranking
type RankEntry struct {
	CountryCode string  `json:"country_code"`
	CountryName string  `json:"country_name"`
	Year        int     `json:"year"`
	UseKWh      float64 `json:"electricity_use_kwh_per_capita"`
	Rank        int     `json:"rank"`
}

// IndexedSeries is a base-100 view of the three indicators over a
// year-sorted selection. The first year's values are always 100.
type IndexedSeries struct {
	Years          []int     `json:"years"`
	UseIndex       []float64 `json:"use_index"`
	RenewableIndex []float64 `json:"renewable_index"`
	LossesIndex    []float64 `json:"losses_index"`
}

// BoxStats is a five-number summary for one indicator
type BoxStats struct {
	Indicator string  `json:"indicator"`
	Min       float64 `json:"min"`
	Q1        float64 `json:"q1"`
	Median    float64 `json:"median"`
	Q3        float64 `json:"q3"`
	Max       float64 `json:"max"`
}

// RefreshSummary describes a completed pipeline run for publishing
type RefreshSummary struct {
	Rows        int     `json:"rows"`
	Countries   int     `json:"countries"`
	MinYear     int     `json:"min_year"`
	MaxYear     int     `json:"max_year"`
	MeanUseKWh  float64 `json:"mean_electricity_use_kwh_per_capita"`
	MeanRenew   float64 `json:"mean_renewable_electricity_percent"`
	MeanLosses  float64 `json:"mean_electricity_losses_pct"`
	GeneratedAt string  `json:"generated_at"`
}
