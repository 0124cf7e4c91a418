package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indicatorBody = `[
  {"page": 1, "pages": 1, "per_page": 20000, "total": 5},
  [
    {"country": {"id": "US", "value": "United States"}, "date": "2010", "value": 13394.0},
    {"country": {"id": "FR", "value": "France"}, "date": "2010", "value": 7756.1},
    {"country": {"id": "1A", "value": "Arab World"}, "date": "2010", "value": 2233.5},
    {"country": {"id": "ZH", "value": "Africa Eastern and Southern"}, "date": "2010", "value": 812.0},
    {"country": {"id": "US", "value": "United States"}, "date": "2011", "value": null}
  ]
]`

func TestConsumption(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/country/all/indicator/EG.USE.ELEC.KH.PC", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "20000", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, indicatorBody)
	}))
	defer srv.Close()

	client := NewWorldBankClient(srv.URL, "EG.USE.ELEC.KH.PC", 20000, nil)

	result, err := client.Consumption(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Fetched)
	assert.Equal(t, 2, result.DroppedNoCode, "aggregate rows should be dropped")
	assert.Equal(t, 1, result.DroppedNull, "null values should be dropped")
	assert.Equal(t, 2, result.Kept())

	require.Equal(t, 2, result.Frame.Nrow())
	assert.Equal(t, []string{ColCountryCode, ColYear, ColUseKWh}, result.Frame.Names())
	assert.Equal(t, []string{"USA", "FRA"}, result.Frame.Col(ColCountryCode).Records())
	assert.InDelta(t, 13394.0, result.Frame.Col(ColUseKWh).Float()[0], 1e-9)
}

func TestConsumptionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewWorldBankClient(srv.URL, "EG.USE.ELEC.KH.PC", 100, nil)

	_, err := client.Consumption(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestConsumptionMalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An error response from the API is a one-element array.
		fmt.Fprint(w, `[{"message": [{"id": "120", "value": "Invalid indicator"}]}]`)
	}))
	defer srv.Close()

	client := NewWorldBankClient(srv.URL, "BAD.INDICATOR", 100, nil)

	_, err := client.Consumption(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected [metadata, records]")
}

func TestConsumptionEmptyRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"page": 1, "pages": 1, "total": 0}, []]`)
	}))
	defer srv.Close()

	client := NewWorldBankClient(srv.URL, "EG.USE.ELEC.KH.PC", 100, nil)

	result, err := client.Consumption(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 0, result.Frame.Nrow())
}
