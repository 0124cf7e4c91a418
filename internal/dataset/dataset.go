// Package dataset provides read access to the integrated electricity
// dataset and the derived views the dashboards are built from.
package dataset

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/elecatlas/elecatlas/internal/source"
	"github.com/elecatlas/elecatlas/pkg/models"
)

// Table is an immutable view over the integrated dataset
type Table struct {
	df dataframe.DataFrame
}

// Load reads the integrated dataset CSV from path. A header-only
// file, the output of a run where no (country, year) pair survived
// the join, loads as an empty table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}

	if !strings.Contains(strings.TrimSpace(string(data)), "\n") {
		return &Table{df: source.EmptyFrame()}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data))
	if df.Err != nil {
		return nil, fmt.Errorf("reading dataset: %w", df.Err)
	}

	return &Table{df: df}, nil
}

// FromFrame wraps an already-built dataframe
func FromFrame(df dataframe.DataFrame) *Table {
	return &Table{df: df}
}

// Loader reads the dataset on demand. With Cache set the file is
// read at most once per process.
type Loader struct {
	Path  string
	Cache bool

	mu  sync.Mutex
	tbl *Table
}

// Table returns the loaded dataset
func (l *Loader) Table() (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Cache && l.tbl != nil {
		return l.tbl, nil
	}

	tbl, err := Load(l.Path)
	if err != nil {
		return nil, err
	}

	l.tbl = tbl

	return tbl, nil
}

// Nrow returns the number of rows
func (t *Table) Nrow() int {
	return t.df.Nrow()
}

// Frame returns the underlying dataframe
func (t *Table) Frame() dataframe.DataFrame {
	return t.df
}

// Selector picks the column a country filter matches against. The
// first dashboard variant filters by ISO-3 code, the others by name.
type Selector struct {
	Column string
	Value  string
}

// ByCode selects a country by ISO-3 code
func ByCode(code string) Selector {
	return Selector{Column: source.ColCountryCode, Value: code}
}

// ByName selects a country by display name
func ByName(name string) Selector {
	return Selector{Column: source.ColCountryName, Value: name}
}

// Filter returns the rows matching the country selector and the
// inclusive year range. A zero selector keeps all countries.
func (t *Table) Filter(sel Selector, from, to int) *Table {
	if t.df.Nrow() == 0 {
		return t
	}

	df := t.df
	if sel.Column != "" {
		df = df.Filter(dataframe.F{Colname: sel.Column, Comparator: series.Eq, Comparando: sel.Value})
	}

	df = df.
		Filter(dataframe.F{Colname: source.ColYear, Comparator: series.GreaterEq, Comparando: from}).
		Filter(dataframe.F{Colname: source.ColYear, Comparator: series.LessEq, Comparando: to})

	return &Table{df: df}
}

// FilterYear returns the rows for a single year
func (t *Table) FilterYear(year int) *Table {
	if t.df.Nrow() == 0 {
		return t
	}

	df := t.df.Filter(dataframe.F{Colname: source.ColYear, Comparator: series.Eq, Comparando: year})

	return &Table{df: df}
}

// SortByYear returns the table ordered by year ascending
func (t *Table) SortByYear() *Table {
	if t.df.Nrow() == 0 {
		return t
	}

	return &Table{df: t.df.Arrange(dataframe.Sort(source.ColYear))}
}

// Records converts the table to row structs
func (t *Table) Records() []models.Record {
	n := t.df.Nrow()
	if n == 0 {
		return nil
	}

	codes := t.df.Col(source.ColCountryCode).Records()
	names := t.df.Col(source.ColCountryName).Records()
	years := t.df.Col(source.ColYear).Float()
	uses := t.df.Col(source.ColUseKWh).Float()
	renews := t.df.Col(source.ColRenewable).Float()
	losses := t.df.Col(source.ColLosses).Float()

	records := make([]models.Record, n)
	for i := 0; i < n; i++ {
		records[i] = models.Record{
			CountryCode:  codes[i],
			CountryName:  names[i],
			Year:         int(years[i]),
			UseKWh:       uses[i],
			RenewablePct: renews[i],
			LossesPct:    losses[i],
		}
	}

	return records
}

// Countries returns the sorted distinct values of the given country
// column (country_code or country_name)
func (t *Table) Countries(column string) []string {
	if t.df.Nrow() == 0 {
		return nil
	}

	seen := make(map[string]struct{})

	var out []string

	for _, v := range t.df.Col(column).Records() {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

// YearBounds returns the min and max year; ok is false on an empty table
func (t *Table) YearBounds() (min, max int, ok bool) {
	if t.df.Nrow() == 0 {
		return 0, 0, false
	}

	years := t.df.Col(source.ColYear).Float()
	min, max = int(years[0]), int(years[0])

	for _, y := range years[1:] {
		if int(y) < min {
			min = int(y)
		}
		if int(y) > max {
			max = int(y)
		}
	}

	return min, max, true
}

// Means computes the arithmetic mean of each indicator over the
// table. ok is false on an empty table so callers can render an
// explicit no-data state instead of NaN.
func (t *Table) Means() (models.KPI, bool) {
	if t.df.Nrow() == 0 {
		return models.KPI{}, false
	}

	return models.KPI{
		MeanUseKWh:       t.df.Col(source.ColUseKWh).Mean(),
		MeanRenewablePct: t.df.Col(source.ColRenewable).Mean(),
		MeanLossesPct:    t.df.Col(source.ColLosses).Mean(),
	}, true
}

// TopByConsumption ranks all countries for a single year by
// descending consumption and returns the top n. Ties keep their
// original row order, so the earlier of two equal values ranks first.
func (t *Table) TopByConsumption(year, n int) []models.RankEntry {
	yearTbl := t.FilterYear(year)
	if yearTbl.Nrow() == 0 {
		return nil
	}

	entries := rankByConsumption(yearTbl)
	if len(entries) > n {
		entries = entries[:n]
	}

	return entries
}

// BumpRanks restricts the table to the given country set (matched on
// the selector column) and ranks those countries by descending
// consumption independently for every year. Ranks are 1-based; ties
// resolve to first-seen row order.
func (t *Table) BumpRanks(column string, members []string) []models.RankEntry {
	if t.df.Nrow() == 0 || len(members) == 0 {
		return nil
	}

	df := t.df.Filter(dataframe.F{Colname: column, Comparator: series.In, Comparando: members})
	if df.Nrow() == 0 {
		return nil
	}

	sub := &Table{df: df}
	records := sub.Records()

	byYear := make(map[int][]models.Record)

	var years []int

	for _, rec := range records {
		if _, ok := byYear[rec.Year]; !ok {
			years = append(years, rec.Year)
		}
		byYear[rec.Year] = append(byYear[rec.Year], rec)
	}

	sort.Ints(years)

	var out []models.RankEntry

	for _, year := range years {
		out = append(out, rankRecords(byYear[year])...)
	}

	return out
}

// Indexed rebases the three indicators to the earliest year of the
// (already filtered) table: every value is divided by that
// indicator's value in the first year, times 100. A zero base value
// produces non-finite index points, which chart rendering skips.
func (t *Table) Indexed() (models.IndexedSeries, bool) {
	sorted := t.SortByYear()
	if sorted.Nrow() == 0 {
		return models.IndexedSeries{}, false
	}

	years := sorted.df.Col(source.ColYear).Float()
	uses := sorted.df.Col(source.ColUseKWh).Float()
	renews := sorted.df.Col(source.ColRenewable).Float()
	losses := sorted.df.Col(source.ColLosses).Float()

	idx := models.IndexedSeries{
		Years:          make([]int, len(years)),
		UseIndex:       make([]float64, len(years)),
		RenewableIndex: make([]float64, len(years)),
		LossesIndex:    make([]float64, len(years)),
	}

	for i := range years {
		idx.Years[i] = int(years[i])
		idx.UseIndex[i] = uses[i] / uses[0] * 100
		idx.RenewableIndex[i] = renews[i] / renews[0] * 100
		idx.LossesIndex[i] = losses[i] / losses[0] * 100
	}

	return idx, true
}

// rankByConsumption ranks every row of the table by descending
// consumption with first-seen tie order
func rankByConsumption(t *Table) []models.RankEntry {
	return rankRecords(t.Records())
}

func rankRecords(records []models.Record) []models.RankEntry {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return records[order[a]].UseKWh > records[order[b]].UseKWh
	})

	entries := make([]models.RankEntry, len(order))
	for rank, i := range order {
		entries[rank] = models.RankEntry{
			CountryCode: records[i].CountryCode,
			CountryName: records[i].CountryName,
			Year:        records[i].Year,
			UseKWh:      records[i].UseKWh,
			Rank:        rank + 1,
		}
	}

	return entries
}
