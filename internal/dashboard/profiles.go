package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elecatlas/elecatlas/internal/source"
)

// Profile selects which charts a dashboard variant shows, in which
// order, and which column its country filter matches against. The
// variants differ only in configuration; everything renders through
// the same module.
type Profile struct {
	Name         string
	Title        string
	KeyColumn    string
	CacheDataset bool
	Charts       []string
}

// Chart identifiers
const (
	ChartChoropleth = "choropleth"
	ChartTop5       = "top5"
	ChartDualTrend  = "dual_trend"
	ChartArea       = "area"
	ChartScatter    = "scatter"
	ChartBubble     = "bubble"
	ChartHeatmap    = "heatmap"
	ChartIndexed    = "indexed"
	ChartCombined   = "combined"
	ChartUseLine    = "use_line"
	ChartRenewLine  = "renewable_line"
	ChartLossesLine = "losses_line"
	ChartBump       = "bump"
	ChartBox        = "box"
)

var chartTitles = map[string]string{
	ChartChoropleth: "World Map: Electricity Use per Capita",
	ChartTop5:       "Top 5 Countries by Electricity Use",
	ChartDualTrend:  "Electricity Use vs Renewable Electricity",
	ChartArea:       "Renewable Electricity Share",
	ChartScatter:    "Electricity Losses vs Consumption",
	ChartBubble:     "Use vs Losses (Size = Renewable %)",
	ChartHeatmap:    "Electricity Use Intensity (Top 5 Countries)",
	ChartIndexed:    "Indexed Comparison of Indicators (Base Year = 100)",
	ChartCombined:   "Combined Time-Series",
	ChartUseLine:    "Electricity Use per Capita Over Time",
	ChartRenewLine:  "Renewable Electricity (%) Over Time",
	ChartLossesLine: "Electricity Losses (%) Over Time",
	ChartBump:       "Rank Change of Electricity Consumption (Bump Chart)",
	ChartBox:        "Distribution of Electricity Indicators (Box Plots)",
}

var profiles = map[string]Profile{
	"explorer": {
		Name:      "explorer",
		Title:     "Global Electricity Analysis",
		KeyColumn: source.ColCountryCode,
		Charts: []string{
			ChartChoropleth, ChartTop5, ChartDualTrend, ChartArea,
			ChartScatter, ChartBubble, ChartHeatmap, ChartIndexed,
			ChartCombined, ChartUseLine, ChartRenewLine, ChartLossesLine,
		},
	},
	"report": {
		Name:      "report",
		Title:     "Global Electricity Analysis",
		KeyColumn: source.ColCountryName,
		Charts: []string{
			ChartUseLine, ChartRenewLine, ChartLossesLine, ChartDualTrend,
			ChartIndexed, ChartScatter, ChartBubble, ChartBox,
			ChartTop5, ChartChoropleth,
		},
	},
	"ranking": {
		Name:      "ranking",
		Title:     "Global Electricity Analysis",
		KeyColumn: source.ColCountryName,
		Charts: []string{
			ChartUseLine, ChartRenewLine, ChartLossesLine, ChartDualTrend,
			ChartIndexed, ChartScatter, ChartTop5, ChartBump,
			ChartChoropleth,
		},
	},
	"deployed": {
		Name:         "deployed",
		Title:        "Global Electricity Analysis",
		KeyColumn:    source.ColCountryName,
		CacheDataset: true,
		Charts: []string{
			ChartUseLine, ChartRenewLine, ChartLossesLine, ChartIndexed,
			ChartChoropleth, ChartTop5,
		},
	},
}

// Lookup resolves a profile by name
func Lookup(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown dashboard profile: %s (available: %s)", name, strings.Join(Names(), ", "))
	}

	return p, nil
}

// Names lists the available profile names
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// ChartTitle returns the display title for a chart identifier
func ChartTitle(name string) string {
	if t, ok := chartTitles[name]; ok {
		return t
	}

	return name
}
