package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2"

	"mmreport/aggregate"
	"mmreport/config"
	"mmreport/core"
	"mmreport/utils"
)

const (
	svgWidth  = 960
	svgHeight = 480
)

func lineStyle(i int) chart.Style {
	color := chart.GetDefaultColor(i)
	return chart.Style{
		StrokeColor: color,
		StrokeWidth: 2,
		DotColor:    color,
		DotWidth:    4,
	}
}

// continuous builds a named series. A lone point is widened to a flat
// segment since go-chart needs a non-empty x range.
func continuous(name string, i int, xs, ys []float64) chart.ContinuousSeries {
	if len(xs) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}
	return chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: lineStyle(i)}
}

func renderSVG(title, yName string, series []chart.Series) (template.HTML, error) {
	if len(series) == 0 {
		return "", ErrNoData
	}
	graph := chart.Chart{
		Title:      title,
		Width:      svgWidth,
		Height:     svgHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Matrix Size"},
		YAxis:      chart.YAxis{Name: yName},
		Series:     series,
	}
	if lo, hi := yExtent(series); lo == hi {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func yExtent(series []chart.Series) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if continuous, ok := s.(chart.ContinuousSeries); ok {
			for _, y := range continuous.YValues {
				lo = math.Min(lo, y)
				hi = math.Max(hi, y)
			}
		}
	}
	return lo, hi
}

func recordCharts(records []aggregate.Record) (speedup, efficiency []chart.Series) {
	for i, s := range speedupSeries(records) {
		name := fmt.Sprintf("%d Processes", s.processes)
		xs := make([]float64, len(s.speedup))
		ys := make([]float64, len(s.speedup))
		percents := make([]float64, len(s.effic))
		for j := range s.speedup {
			xs[j] = s.speedup[j].X
			ys[j] = s.speedup[j].Y
			percents[j] = s.effic[j].Y * 100
		}
		speedup = append(speedup, continuous(name, i, xs, ys))
		efficiency = append(efficiency, continuous(name, i, xs, percents))
	}
	return speedup, efficiency
}

func timeChart(set *core.ResultSet, op func([]float64) (float64, error)) ([]chart.Series, error) {
	series := make([]chart.Series, 0)
	for i, processes := range seriesKeys(set) {
		rows := set.WithProcesses(processes)
		sizes := rows.Sizes()
		xs := make([]float64, len(sizes))
		ys := make([]float64, len(sizes))
		for j, size := range sizes {
			value, err := op(rows.WithSize(size).Times())
			if err != nil {
				return nil, err
			}
			xs[j] = float64(size)
			ys[j] = value * 1000
		}
		series = append(series, continuous(seriesLabel(processes), i, xs, ys))
	}
	return series, nil
}

type reportRow struct {
	Size           int
	Processes      int
	SequentialMs   string
	ParallelMs     string
	Speedup        string
	Efficiency     string
	Samples        string
	Reason         string
	SortSpeedup    string
	SortEfficiency string
}

func formatValue(value float64, precision int) string {
	if math.IsNaN(value) {
		return "n/a"
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func sortValue(value float64) string {
	if math.IsNaN(value) {
		return "-1"
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func reportRows(records []aggregate.Record) []reportRow {
	rows := make([]reportRow, len(records))
	for i, record := range records {
		rows[i] = reportRow{
			Size:           record.Size,
			Processes:      record.Processes,
			SequentialMs:   formatValue(record.SequentialTime*1000, 3),
			ParallelMs:     formatValue(record.ParallelTime*1000, 3),
			Speedup:        formatValue(record.Speedup, 4),
			Efficiency:     formatValue(record.EfficiencyPercent(), 2),
			Samples:        fmt.Sprintf("%d / %d", record.SequentialSamples, record.ParallelSamples),
			Reason:         record.Reason,
			SortSpeedup:    sortValue(record.Speedup),
			SortEfficiency: sortValue(record.Efficiency),
		}
	}
	return rows
}

type report struct {
	Title      string
	Reducer    string
	Speedup    template.HTML
	Efficiency template.HTML
	Time       template.HTML
	Rows       []reportRow
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
figure { margin: 1em 0; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th { cursor: pointer; background: #f0f0f0; }
tr.undefined td { color: #999; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Times reduced with the {{.Reducer}} of each group.</p>
{{if .Speedup}}<figure>{{.Speedup}}</figure>{{end}}
{{if .Efficiency}}<figure>{{.Efficiency}}</figure>{{end}}
{{if .Time}}<figure>{{.Time}}</figure>{{end}}
<table id="records">
<thead><tr>
<th data-type="number">Size</th>
<th data-type="number">Processes</th>
<th data-type="number">Sequential (ms)</th>
<th data-type="number">Parallel (ms)</th>
<th data-type="number">Speedup</th>
<th data-type="number">Efficiency (%)</th>
<th data-type="text">Samples</th>
<th data-type="text">Note</th>
</tr></thead>
<tbody>
{{range .Rows}}<tr{{if .Reason}} class="undefined"{{end}}>
<td>{{.Size}}</td>
<td>{{.Processes}}</td>
<td>{{.SequentialMs}}</td>
<td>{{.ParallelMs}}</td>
<td data-sort="{{.SortSpeedup}}">{{.Speedup}}</td>
<td data-sort="{{.SortEfficiency}}">{{.Efficiency}}</td>
<td>{{.Samples}}</td>
<td>{{.Reason}}</td>
</tr>
{{end}}</tbody>
</table>
<script>
document.querySelectorAll("#records th").forEach(function (th, column) {
  var ascending = true;
  th.addEventListener("click", function () {
    var body = document.querySelector("#records tbody");
    var rows = Array.prototype.slice.call(body.rows);
    var numeric = th.dataset.type === "number";
    rows.sort(function (a, b) {
      var x = a.cells[column].dataset.sort || a.cells[column].textContent;
      var y = b.cells[column].dataset.sort || b.cells[column].textContent;
      var order = numeric ? parseFloat(x) - parseFloat(y) : x.localeCompare(y);
      return ascending ? order : -order;
    });
    ascending = !ascending;
    rows.forEach(function (row) { body.appendChild(row); });
  });
});
</script>
</body>
</html>
`))

// HTMLReport writes a self-contained page with SVG charts of speedup,
// efficiency and execution time and a sortable table of the records.
func HTMLReport(records []aggregate.Record, set *core.ResultSet, cfg *config.Config) (string, error) {
	if len(records) == 0 && set.Empty() {
		return "", ErrNoData
	}
	op := cfg.Op()
	page := report{
		Title:   "Matrix Multiplication Speedup and Efficiency",
		Reducer: op.Name(),
		Rows:    reportRows(records),
	}

	speedup, efficiency := recordCharts(records)
	times, err := timeChart(set, op.Apply)
	if err != nil {
		return "", err
	}
	// A chart that fails to render is left out of the page.
	charts := []struct {
		title, yName string
		series       []chart.Series
		out          *template.HTML
	}{
		{"Speedup", "Speedup", speedup, &page.Speedup},
		{"Efficiency", "Efficiency (%)", efficiency, &page.Efficiency},
		{"Execution Time", "Time (ms)", times, &page.Time},
	}
	for _, c := range charts {
		svg, err := renderSVG(c.title, c.yName, c.series)
		if err != nil {
			log.Warnf("Skipping %s chart: %v", c.title, err)
			continue
		}
		*c.out = svg
	}

	path := filepath.Join(cfg.ReportsDir, HTMLReportFile)
	err = utils.WriteFileAtomic(path, func(w io.Writer) error {
		return reportTemplate.Execute(w, page)
	})
	if err != nil {
		return "", err
	}
	log.Infof("Interactive report written to %s", path)
	return path, nil
}
