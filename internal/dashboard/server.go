// Package dashboard serves the interactive dashboards. All four
// variants run through one server parameterized by a Profile.
package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/elecatlas/elecatlas/internal/chart"
	"github.com/elecatlas/elecatlas/internal/dataset"
	"github.com/elecatlas/elecatlas/internal/geo"
	"github.com/elecatlas/elecatlas/internal/source"
	"github.com/elecatlas/elecatlas/pkg/models"
)

// ErrNoData signals an empty filtered selection; handlers turn it
// into an explicit no-data response instead of rendering NaN
var ErrNoData = errors.New("no data available for selected filters")

// Server renders one dashboard profile over the integrated dataset
type Server struct {
	profile Profile
	loader  *dataset.Loader
	geoPath string

	geoOnce sync.Once
	world   *geo.World
	geoErr  error
}

// New creates a dashboard server. The dataset is read per request
// unless the profile caches it; boundaries load lazily on the first
// map render.
func New(datasetPath, geoPath string, profile Profile) *Server {
	return &Server{
		profile: profile,
		loader:  &dataset.Loader{Path: datasetPath, Cache: profile.CacheDataset},
		geoPath: geoPath,
	}
}

// Router builds the gin engine with all dashboard routes
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", s.handleIndex)
	r.GET("/charts/:name", s.handleChart)

	api := r.Group("/api")
	api.GET("/meta", s.handleMeta)
	api.GET("/kpis", s.handleKPIs)
	api.GET("/series", s.handleSeries)
	api.GET("/top5", s.handleTop5)
	api.GET("/indexed", s.handleIndexed)
	api.GET("/bump", s.handleBump)
	api.GET("/choropleth", s.handleChoropleth)
	api.GET("/records", s.handleRecords)

	return r
}

// Run starts the server on addr
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) boundaries() (*geo.World, error) {
	s.geoOnce.Do(func() {
		s.world, s.geoErr = geo.LoadWorld(s.geoPath)
	})

	return s.world, s.geoErr
}

// selection holds the parsed filter state of one request
type selection struct {
	country string
	from    int
	to      int
	year    int
}

func (s *Server) parseSelection(c *gin.Context, tbl *dataset.Table) selection {
	minYear, maxYear, _ := tbl.YearBounds()

	country := c.Query("country")
	if country == "" {
		if countries := tbl.Countries(s.profile.KeyColumn); len(countries) > 0 {
			country = countries[0]
		}
	}

	return selection{
		country: country,
		from:    intQuery(c, "from", minYear),
		to:      intQuery(c, "to", maxYear),
		year:    intQuery(c, "year", maxYear),
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func (s *Server) filtered(tbl *dataset.Table, sel selection) *dataset.Table {
	return tbl.Filter(dataset.Selector{Column: s.profile.KeyColumn, Value: sel.country}, sel.from, sel.to)
}

func (s *Server) table(c *gin.Context) (*dataset.Table, bool) {
	tbl, err := s.loader.Table()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	return tbl, true
}

func (s *Server) rankLabel() func(models.RankEntry) string {
	if s.profile.KeyColumn == source.ColCountryCode {
		return func(e models.RankEntry) string { return e.CountryCode }
	}

	return func(e models.RankEntry) string { return e.CountryName }
}

func (s *Server) handleMeta(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	minYear, maxYear, _ := tbl.YearBounds()

	c.JSON(http.StatusOK, gin.H{
		"profile":   s.profile.Name,
		"countries": tbl.Countries(s.profile.KeyColumn),
		"min_year":  minYear,
		"max_year":  maxYear,
	})
}

func (s *Server) handleKPIs(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)

	kpi, ok := s.filtered(tbl, sel).Means()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"empty": true, "message": ErrNoData.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"empty": false, "kpis": kpi})
}

func (s *Server) handleSeries(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)

	records := s.filtered(tbl, sel).SortByYear().Records()
	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"empty": true, "message": ErrNoData.Error()})
		return
	}

	years := make([]int, len(records))
	uses := make([]float64, len(records))
	renews := make([]float64, len(records))
	losses := make([]float64, len(records))

	for i, rec := range records {
		years[i] = rec.Year
		uses[i] = rec.UseKWh
		renews[i] = rec.RenewablePct
		losses[i] = rec.LossesPct
	}

	c.JSON(http.StatusOK, gin.H{
		"empty":                          false,
		"country":                        sel.country,
		"years":                          years,
		"electricity_use_kwh_per_capita": uses,
		"renewable_electricity_percent":  renews,
		"electricity_losses_pct":         losses,
	})
}

func (s *Server) handleTop5(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)

	c.JSON(http.StatusOK, gin.H{
		"year":    sel.year,
		"entries": tbl.TopByConsumption(sel.year, 5),
	})
}

func (s *Server) handleIndexed(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)

	idx, ok := s.filtered(tbl, sel).Indexed()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"empty": true, "message": ErrNoData.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"empty": false, "indexed": idx})
}

func (s *Server) handleBump(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)
	label := s.rankLabel()

	top := tbl.TopByConsumption(sel.year, 5)

	members := make([]string, 0, len(top))
	for _, e := range top {
		members = append(members, label(e))
	}

	c.JSON(http.StatusOK, gin.H{
		"year":    sel.year,
		"entries": tbl.BumpRanks(s.profile.KeyColumn, members),
	})
}

func (s *Server) handleChoropleth(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	world, err := s.boundaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sel := s.parseSelection(c, tbl)

	type regionValue struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Value    *float64 `json:"value"`
		HasValue bool     `json:"has_value"`
	}

	features := world.JoinYear(tbl, sel.year)

	out := make([]regionValue, 0, len(features))
	for _, f := range features {
		rv := regionValue{ID: f.ID, Name: f.Name, HasValue: f.HasValue}
		if f.HasValue {
			v := f.Value
			rv.Value = &v
		}
		out = append(out, rv)
	}

	c.JSON(http.StatusOK, gin.H{"year": sel.year, "regions": out})
}

func (s *Server) handleRecords(c *gin.Context) {
	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)

	c.JSON(http.StatusOK, gin.H{
		"country": sel.country,
		"records": s.filtered(tbl, sel).SortByYear().Records(),
	})
}

func (s *Server) handleChart(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("name"), ".png")

	tbl, ok := s.table(c)
	if !ok {
		return
	}

	sel := s.parseSelection(c, tbl)

	png, err := s.renderChart(name, tbl, sel)
	if errors.Is(err, ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrNoData.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// RenderChart renders one named chart for the given filter values.
// Used by both the HTTP handler and the render command.
func (s *Server) RenderChart(name, country string, from, to, year int) ([]byte, error) {
	tbl, err := s.loader.Table()
	if err != nil {
		return nil, err
	}

	return s.renderChart(name, tbl, selection{country: country, from: from, to: to, year: year})
}

func (s *Server) renderChart(name string, tbl *dataset.Table, sel selection) ([]byte, error) {
	title := ChartTitle(name)
	label := s.rankLabel()

	switch name {
	case ChartUseLine, ChartRenewLine, ChartLossesLine, ChartArea, ChartCombined, ChartDualTrend,
		ChartScatter, ChartBubble, ChartIndexed, ChartBox:
		sub := s.filtered(tbl, sel).SortByYear()
		if sub.Nrow() == 0 {
			return nil, ErrNoData
		}

		return renderSelectionChart(name, title, sub)

	case ChartTop5:
		entries := tbl.TopByConsumption(sel.year, 5)
		if len(entries) == 0 {
			return nil, ErrNoData
		}

		return chart.TopBar(fmt.Sprintf("%s (%d)", title, sel.year), entries, label)

	case ChartHeatmap, ChartBump:
		top := tbl.TopByConsumption(sel.year, 5)
		if len(top) == 0 {
			return nil, ErrNoData
		}

		members := make([]string, 0, len(top))
		for _, e := range top {
			members = append(members, label(e))
		}

		if name == ChartHeatmap {
			records := topSetRecords(tbl, s.profile.KeyColumn, members)
			return chart.Heatmap(title, records, recordLabel(s.profile.KeyColumn))
		}

		entries := tbl.BumpRanks(s.profile.KeyColumn, members)
		return chart.Bump(title, entries, label)

	case ChartChoropleth:
		world, err := s.boundaries()
		if err != nil {
			return nil, err
		}

		features := world.JoinYear(tbl, sel.year)

		return chart.Choropleth(fmt.Sprintf("%s (%d)", title, sel.year), features)

	default:
		return nil, fmt.Errorf("unknown chart: %s", name)
	}
}

func renderSelectionChart(name, title string, sub *dataset.Table) ([]byte, error) {
	records := sub.Records()

	years := make([]int, len(records))
	uses := make([]float64, len(records))
	renews := make([]float64, len(records))
	losses := make([]float64, len(records))

	for i, rec := range records {
		years[i] = rec.Year
		uses[i] = rec.UseKWh
		renews[i] = rec.RenewablePct
		losses[i] = rec.LossesPct
	}

	switch name {
	case ChartUseLine:
		return chart.Line(title, "kWh per capita", years, uses)
	case ChartRenewLine:
		return chart.Line(title, "Renewable (%)", years, renews)
	case ChartLossesLine:
		return chart.Line(title, "Losses (%)", years, losses)
	case ChartArea:
		return chart.Area(title, "Renewable (%)", years, renews)
	case ChartDualTrend:
		return chart.MultiLine(title, "Value", []chart.Series{
			{Name: "Electricity Use (kWh/capita)", Years: years, Values: uses},
			{Name: "Renewable Electricity (%)", Years: years, Values: renews},
		})
	case ChartCombined:
		return chart.MultiLine(title, "Value", []chart.Series{
			{Name: "Electricity Use (kWh/capita)", Years: years, Values: uses},
			{Name: "Renewable Electricity (%)", Years: years, Values: renews},
			{Name: "Losses (%)", Years: years, Values: losses},
		})
	case ChartScatter:
		return chart.Scatter(title, uses, losses, years)
	case ChartBubble:
		return chart.Bubble(title, uses, losses, renews, years)
	case ChartIndexed:
		idx, ok := sub.Indexed()
		if !ok {
			return nil, ErrNoData
		}

		return chart.MultiLine(title, "Index (base = 100)", []chart.Series{
			{Name: "Use Index", Years: idx.Years, Values: idx.UseIndex},
			{Name: "Renewable Index", Years: idx.Years, Values: idx.RenewableIndex},
			{Name: "Losses Index", Years: idx.Years, Values: idx.LossesIndex},
		})
	case ChartBox:
		stats := sub.BoxStats()
		samples := map[string][]float64{
			source.ColUseKWh:    uses,
			source.ColRenewable: renews,
			source.ColLosses:    losses,
		}

		return chart.Box(title, stats, samples)
	default:
		return nil, fmt.Errorf("unknown chart: %s", name)
	}
}

// topSetRecords returns every year's rows for the given country set,
// preserving table order
func topSetRecords(tbl *dataset.Table, column string, members []string) []models.Record {
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}

	key := recordLabel(column)

	var out []models.Record

	for _, rec := range tbl.Records() {
		if _, ok := set[key(rec)]; ok {
			out = append(out, rec)
		}
	}

	return out
}

func recordLabel(column string) func(models.Record) string {
	if column == source.ColCountryCode {
		return func(r models.Record) string { return r.CountryCode }
	}

	return func(r models.Record) string { return r.CountryName }
}
