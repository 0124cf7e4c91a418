package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renewableCSV = `Country Name,Country Code,year,renewable_electricity_percent
United States,USA,2010,10.1
United States,USA,2011,12.3
France,FRA,2010,15.4
`

func TestRenewable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "renewable_electricity_processed.csv")
	require.NoError(t, os.WriteFile(path, []byte(renewableCSV), 0644))

	df, err := Renewable(path)
	require.NoError(t, err)

	assert.Equal(t, 3, df.Nrow())
	assert.ElementsMatch(t, []string{ColCountryName, ColCountryCode, ColYear, ColRenewable}, df.Names())
	assert.Equal(t, []string{"USA", "USA", "FRA"}, df.Col(ColCountryCode).Records())
	assert.InDelta(t, 10.1, df.Col(ColRenewable).Float()[0], 1e-9)
}

func TestRenewableMissingFile(t *testing.T) {
	_, err := Renewable(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening renewable csv")
}
