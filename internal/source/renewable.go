package source

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
)

// Renewable reads the pre-processed renewable electricity share CSV
// and standardizes its column names. The file carries at least
// "Country Code", "Country Name", "year" and the renewable share
// column; the code and name columns are renamed to the common
// convention used across all sources.
func Renewable(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("opening renewable csv: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading renewable csv: %w", df.Err)
	}

	df = df.Rename(ColCountryCode, "Country Code")
	df = df.Rename(ColCountryName, "Country Name")
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("renaming renewable columns: %w", df.Err)
	}

	return df, nil
}
