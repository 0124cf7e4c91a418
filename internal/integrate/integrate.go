// Package integrate combines the three indicator sources into the
// final dataset.
package integrate

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/elecatlas/elecatlas/internal/source"
)

// Columns is the canonical column order of the integrated dataset
var Columns = []string{
	source.ColCountryCode,
	source.ColCountryName,
	source.ColYear,
	source.ColUseKWh,
	source.ColRenewable,
	source.ColLosses,
}

// Integrate inner-joins the three sources on (country_code, year):
// renewable with losses first, then the result with consumption. A
// (country, year) pair appears in the output only when all three
// sources carry it. Duplicate keys within a source fan out, matching
// the join semantics of the upstream datasets; no deduplication is
// attempted. An empty source yields an empty result, not an error.
func Integrate(consumption, renewable, losses dataframe.DataFrame) (dataframe.DataFrame, error) {
	if consumption.Nrow() == 0 || renewable.Nrow() == 0 || losses.Nrow() == 0 {
		return Empty(), nil
	}

	df := renewable.InnerJoin(losses, source.ColCountryCode, source.ColYear)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("joining renewable with losses: %w", df.Err)
	}

	if df.Nrow() == 0 {
		return Empty(), nil
	}

	df = df.InnerJoin(consumption, source.ColCountryCode, source.ColYear)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("joining with consumption: %w", df.Err)
	}

	if df.Nrow() == 0 {
		return Empty(), nil
	}

	df = df.Select(Columns)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("ordering dataset columns: %w", df.Err)
	}

	return df, nil
}

// Empty returns a zero-row dataset with the canonical columns
func Empty() dataframe.DataFrame {
	return source.EmptyFrame()
}

// WriteDataset overwrites the output CSV with the integrated table
func WriteDataset(df dataframe.DataFrame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("writing dataset csv: %w", err)
	}

	return nil
}
