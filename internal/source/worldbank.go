package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/go-resty/resty/v2"

	"github.com/elecatlas/elecatlas/internal/countrycode"
)

// WorldBankClient fetches indicator series from the World Bank API
type WorldBankClient struct {
	client    *resty.Client
	baseURL   string
	indicator string
	perPage   int
}

// ConsumptionResult is the consumption table plus drop accounting.
// Dropped rows are aggregates (no alpha-3 code) or null values; they
// are counted here instead of being logged one by one.
type ConsumptionResult struct {
	Frame         dataframe.DataFrame
	Fetched       int
	DroppedNoCode int
	DroppedNull   int
}

// apiRecord is one entry of the indicator response body
type apiRecord struct {
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// NewWorldBankClient creates an API client with the given settings
func NewWorldBankClient(baseURL, indicator string, perPage int, client *resty.Client) *WorldBankClient {
	if client == nil {
		client = resty.New()
	}

	return &WorldBankClient{
		client:    client,
		baseURL:   baseURL,
		indicator: indicator,
		perPage:   perPage,
	}
}

// Consumption fetches the electricity consumption indicator for all
// countries and returns a (country_code, year, use) table. Rows whose
// alpha-2 code has no country mapping, and rows with a null value,
// are filtered out.
func (w *WorldBankClient) Consumption(ctx context.Context) (*ConsumptionResult, error) {
	url := fmt.Sprintf("%s/country/all/indicator/%s", w.baseURL, w.indicator)

	resp, err := w.client.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetQueryParam("per_page", strconv.Itoa(w.perPage)).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching consumption indicator: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetching consumption indicator: unexpected status %d", resp.StatusCode())
	}

	records, err := decodeIndicatorBody(resp.Body())
	if err != nil {
		return nil, err
	}

	result := &ConsumptionResult{Fetched: len(records)}

	codes := make([]string, 0, len(records))
	years := make([]int, 0, len(records))
	values := make([]float64, 0, len(records))

	for _, rec := range records {
		iso3, ok := countrycode.ToISO3(rec.Country.ID)
		if !ok {
			result.DroppedNoCode++
			continue
		}

		if rec.Value == nil {
			result.DroppedNull++
			continue
		}

		year, err := strconv.Atoi(rec.Date)
		if err != nil {
			// The API reports years as plain integer strings; anything
			// else is treated like a missing value.
			result.DroppedNull++
			continue
		}

		codes = append(codes, iso3)
		years = append(years, year)
		values = append(values, *rec.Value)
	}

	result.Frame = dataframe.New(
		series.New(codes, series.String, ColCountryCode),
		series.New(years, series.Int, ColYear),
		series.New(values, series.Float, ColUseKWh),
	)
	if result.Frame.Err != nil {
		return nil, fmt.Errorf("building consumption table: %w", result.Frame.Err)
	}

	return result, nil
}

// decodeIndicatorBody unpacks the two-element response array: the
// first element is paging metadata, the second is the record list.
func decodeIndicatorBody(body []byte) ([]apiRecord, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding indicator response: %w", err)
	}

	if len(envelope) < 2 {
		return nil, fmt.Errorf("decoding indicator response: expected [metadata, records], got %d elements", len(envelope))
	}

	var records []apiRecord
	if err := json.Unmarshal(envelope[1], &records); err != nil {
		return nil, fmt.Errorf("decoding indicator records: %w", err)
	}

	return records, nil
}

// Kept reports how many rows survived filtering
func (r *ConsumptionResult) Kept() int {
	return r.Fetched - r.DroppedNoCode - r.DroppedNull
}
