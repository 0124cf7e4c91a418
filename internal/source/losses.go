package source

import (
	"database/sql"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	_ "modernc.org/sqlite"
)

// LossesDB wraps the sqlite store holding the transmission and
// distribution losses table
type LossesDB struct {
	conn *sql.DB
}

// OpenLosses opens the losses sqlite store
func OpenLosses(dbPath string) (*LossesDB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening losses database: %w", err)
	}

	return &LossesDB{conn: conn}, nil
}

// Close closes the database connection
func (db *LossesDB) Close() error {
	return db.conn.Close()
}

// Losses reads the named table into a (country_code, year, losses)
// dataframe, ordered as stored
func (db *LossesDB) Losses(table string) (dataframe.DataFrame, error) {
	query := fmt.Sprintf(`SELECT country_code, year, electricity_losses_pct FROM %q`, table)

	rows, err := db.conn.Query(query)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("querying losses table: %w", err)
	}
	defer rows.Close()

	var (
		codes  []string
		years  []int
		values []float64
	)

	for rows.Next() {
		var (
			code  string
			year  int
			value float64
		)

		if err := rows.Scan(&code, &year, &value); err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("scanning losses row: %w", err)
		}

		codes = append(codes, code)
		years = append(years, year)
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("reading losses rows: %w", err)
	}

	if codes == nil {
		codes, years, values = []string{}, []int{}, []float64{}
	}

	df := dataframe.New(
		series.New(codes, series.String, ColCountryCode),
		series.New(years, series.Int, ColYear),
		series.New(values, series.Float, ColLosses),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("building losses table: %w", df.Err)
	}

	return df, nil
}
