package dataset

import (
	"time"

	"github.com/elecatlas/elecatlas/internal/source"
	"github.com/elecatlas/elecatlas/pkg/models"
)

// Summary describes the whole table for refresh announcements
func (t *Table) Summary() models.RefreshSummary {
	summary := models.RefreshSummary{
		Rows:        t.Nrow(),
		Countries:   len(t.Countries(source.ColCountryCode)),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if minYear, maxYear, ok := t.YearBounds(); ok {
		summary.MinYear = minYear
		summary.MaxYear = maxYear
	}

	if kpi, ok := t.Means(); ok {
		summary.MeanUseKWh = kpi.MeanUseKWh
		summary.MeanRenew = kpi.MeanRenewablePct
		summary.MeanLosses = kpi.MeanLossesPct
	}

	return summary
}
