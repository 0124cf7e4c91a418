package dashboard

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elecatlas/elecatlas/pkg/models"
)

// chartView is one chart slot on the page
type chartView struct {
	Title string
	URL   string
}

type pageData struct {
	Title     string
	Profile   string
	Countries []string
	Country   string
	From      int
	To        int
	Year      int
	MinYear   int
	MaxYear   int
	HasData   bool
	KPIs      models.KPI
	Charts    []chartView
	Records   []models.Record
}

// selectionCharts need a non-empty country/year-range subset; the
// rest are keyed on the map/ranking year and render regardless
var selectionCharts = map[string]bool{
	ChartUseLine:    true,
	ChartRenewLine:  true,
	ChartLossesLine: true,
	ChartArea:       true,
	ChartDualTrend:  true,
	ChartCombined:   true,
	ChartScatter:    true,
	ChartBubble:     true,
	ChartIndexed:    true,
	ChartBox:        true,
}

func (s *Server) handleIndex(c *gin.Context) {
	tbl, err := s.loader.Table()
	if err != nil {
		c.String(http.StatusInternalServerError, "loading dataset: %v", err)
		return
	}

	sel := s.parseSelection(c, tbl)
	minYear, maxYear, _ := tbl.YearBounds()
	filtered := s.filtered(tbl, sel).SortByYear()

	data := pageData{
		Title:     s.profile.Title,
		Profile:   s.profile.Name,
		Countries: tbl.Countries(s.profile.KeyColumn),
		Country:   sel.country,
		From:      sel.from,
		To:        sel.to,
		Year:      sel.year,
		MinYear:   minYear,
		MaxYear:   maxYear,
		Records:   filtered.Records(),
	}

	data.KPIs, data.HasData = filtered.Means()

	for _, name := range s.profile.Charts {
		if selectionCharts[name] && !data.HasData {
			continue
		}

		data.Charts = append(data.Charts, chartView{
			Title: ChartTitle(name),
			URL: fmt.Sprintf("/charts/%s.png?country=%s&from=%d&to=%d&year=%d",
				name, template.URLQueryEscaper(sel.country), sel.from, sel.to, sel.year),
		})
	}

	c.HTML(http.StatusOK, "index", data)
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em auto; max-width: 1100px; color: #222; }
h1 { margin-bottom: 0.2em; }
.profile { color: #888; margin-bottom: 1.5em; }
form { background: #f5f5f5; padding: 1em; border-radius: 6px; margin-bottom: 1.5em; }
form label { margin-right: 1em; }
.kpis { display: flex; gap: 2em; margin-bottom: 1.5em; }
.kpi { background: #eef4fb; padding: 1em 1.5em; border-radius: 6px; }
.kpi .value { font-size: 1.6em; font-weight: bold; }
.warning { background: #fff3cd; padding: 1em; border-radius: 6px; }
.chart { margin-bottom: 2em; }
.chart img { max-width: 100%; border: 1px solid #ddd; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 0.4em 0.7em; text-align: right; }
th:first-child, td:first-child, th:nth-child(2), td:nth-child(2) { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="profile">Profile: {{.Profile}}</p>

<form method="get" action="/">
<label>Country
<select name="country">
{{range .Countries}}<option value="{{.}}"{{if eq . $.Country}} selected{{end}}>{{.}}</option>
{{end}}</select>
</label>
<label>From <input type="number" name="from" value="{{.From}}" min="{{.MinYear}}" max="{{.MaxYear}}"></label>
<label>To <input type="number" name="to" value="{{.To}}" min="{{.MinYear}}" max="{{.MaxYear}}"></label>
<label>Map/Ranking Year <input type="number" name="year" value="{{.Year}}" min="{{.MinYear}}" max="{{.MaxYear}}"></label>
<button type="submit">Apply</button>
</form>

{{if .HasData}}
<div class="kpis">
<div class="kpi"><div>Avg Electricity Use (kWh/capita)</div><div class="value">{{printf "%.0f" .KPIs.MeanUseKWh}}</div></div>
<div class="kpi"><div>Avg Renewable Electricity (%)</div><div class="value">{{printf "%.1f" .KPIs.MeanRenewablePct}}</div></div>
<div class="kpi"><div>Avg Electricity Losses (%)</div><div class="value">{{printf "%.1f" .KPIs.MeanLossesPct}}</div></div>
</div>
{{else}}
<p class="warning">No data available for selected filters.</p>
{{end}}

{{range .Charts}}
<div class="chart">
<h2>{{.Title}}</h2>
<img src="{{.URL}}" alt="{{.Title}}">
</div>
{{end}}

<h2>Detailed Data for {{.Country}}</h2>
{{if .Records}}
<table>
<tr><th>Code</th><th>Country</th><th>Year</th><th>Use (kWh/capita)</th><th>Renewable (%)</th><th>Losses (%)</th></tr>
{{range .Records}}
<tr><td>{{.CountryCode}}</td><td>{{.CountryName}}</td><td>{{.Year}}</td><td>{{printf "%.2f" .UseKWh}}</td><td>{{printf "%.2f" .RenewablePct}}</td><td>{{printf "%.2f" .LossesPct}}</td></tr>
{{end}}
</table>
{{else}}
<p class="warning">No rows match the current filters.</p>
{{end}}
</body>
</html>
`))
