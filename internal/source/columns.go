// Package source extracts the three indicator tables the pipeline
// integrates: consumption from the World Bank API, renewable share
// from a CSV file and transmission losses from a SQLite store.
package source

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names shared by every source table
const (
	ColCountryCode = "country_code"
	ColCountryName = "country_name"
	ColYear        = "year"
	ColUseKWh      = "electricity_use_kwh_per_capita"
	ColRenewable   = "renewable_electricity_percent"
	ColLosses      = "electricity_losses_pct"
)

// EmptyFrame returns a zero-row table with the canonical integrated
// dataset columns
func EmptyFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{}, series.String, ColCountryCode),
		series.New([]string{}, series.String, ColCountryName),
		series.New([]int{}, series.Int, ColYear),
		series.New([]float64{}, series.Float, ColUseKWh),
		series.New([]float64{}, series.Float, ColRenewable),
		series.New([]float64{}, series.Float, ColLosses),
	)
}
