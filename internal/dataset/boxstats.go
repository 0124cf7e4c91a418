package dataset

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/elecatlas/elecatlas/internal/source"
	"github.com/elecatlas/elecatlas/pkg/models"
)

// BoxStats computes a five-number summary for each indicator over the
// table. Returns nil on an empty table.
func (t *Table) BoxStats() []models.BoxStats {
	if t.df.Nrow() == 0 {
		return nil
	}

	indicators := []string{source.ColUseKWh, source.ColRenewable, source.ColLosses}

	out := make([]models.BoxStats, 0, len(indicators))

	for _, name := range indicators {
		vals := append([]float64(nil), t.df.Col(name).Float()...)
		sort.Float64s(vals)

		out = append(out, models.BoxStats{
			Indicator: name,
			Min:       vals[0],
			Q1:        stat.Quantile(0.25, stat.Empirical, vals, nil),
			Median:    stat.Quantile(0.5, stat.Empirical, vals, nil),
			Q3:        stat.Quantile(0.75, stat.Empirical, vals, nil),
			Max:       vals[len(vals)-1],
		})
	}

	return out
}
