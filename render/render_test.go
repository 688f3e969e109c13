package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mmreport/aggregate"
	"mmreport/config"
	"mmreport/core"
	"mmreport/operator"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.PicturesDir = filepath.Join(dir, "pictures")
	cfg.ReportsDir = filepath.Join(dir, "results")
	cfg.ResultsDir = cfg.ReportsDir
	cfg.DPI = 40
	cfg.WidthIn = 4
	cfg.HeightIn = 3
	cfg.Bins = 5
	return cfg
}

func testSet() *core.ResultSet {
	set := core.NewResultSet()
	for _, size := range []int{100, 200} {
		scale := float64(size) / 100
		set.Append(
			core.Row{Size: size, Time: 2.0 * scale, Memory: 1.0 * scale},
			core.Row{Size: size, Time: 2.2 * scale, Memory: 1.0 * scale},
			core.Row{Size: size, Time: 1.9 * scale, Memory: 1.1 * scale},
		)
		for _, processes := range []int{2, 4} {
			parTime := 2.0 * scale / float64(processes)
			set.Append(
				core.Row{Size: size, Time: parTime, Memory: 0.6 * scale, Processes: processes},
				core.Row{Size: size, Time: parTime * 1.1, Memory: 0.6 * scale, Processes: processes},
				core.Row{Size: size, Time: parTime * 0.9, Memory: 0.7 * scale, Processes: processes},
			)
		}
	}
	return set
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestHistogramName(t *testing.T) {
	assert.Equal(t, HistogramName("sequential", core.Key{Size: 100}), "sequential_size_100.png")
	assert.Equal(t,
		HistogramName("parallel_parallel_results", core.Key{Size: 200, Processes: 4}),
		"parallel_parallel_results_size_200_proc_4.png")
	assert.Equal(t,
		HistogramPath("pictures", "sequential", core.Key{Size: 50}),
		filepath.Join("pictures", "sequential_size_50.png"))
}

func TestHistograms(t *testing.T) {
	cfg := testConfig(t)
	set := testSet()

	paths, err := Histograms(set, "results", cfg)
	require.NoError(t, err)
	require.Len(t, paths, 6)
	assert.Equal(t, paths[0], filepath.Join(cfg.PicturesDir, "results_size_100.png"))
	assert.Equal(t, paths[5], filepath.Join(cfg.PicturesDir, "results_size_200_proc_4.png"))
	for _, path := range paths {
		requirePNG(t, path)
	}

	cfg.LogScale = false
	single := core.NewResultSet(core.Row{Size: 10, Time: 0.5, Memory: 1})
	paths, err = Histograms(single, "single", cfg)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	requirePNG(t, paths[0])
}

func TestHistograms_Empty(t *testing.T) {
	_, err := Histograms(core.NewResultSet(), "empty", testConfig(t))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSpeedupEfficiency(t *testing.T) {
	cfg := testConfig(t)
	records := aggregate.All(testSet(), operator.NewMedianOp())

	path, err := SpeedupEfficiency(records, cfg)
	require.NoError(t, err)
	assert.Equal(t, path, filepath.Join(cfg.PicturesDir, SpeedupEfficiencyFile))
	requirePNG(t, path)
}

func TestSpeedupEfficiency_SkipsUndefined(t *testing.T) {
	cfg := testConfig(t)
	records := []aggregate.Record{
		{Size: 100, Processes: 2, Speedup: math.NaN(), Efficiency: math.NaN(), Reason: aggregate.ReasonNoSequential},
	}
	_, err := SpeedupEfficiency(records, cfg)
	assert.ErrorIs(t, err, ErrNoData)

	series := speedupSeries(append(records, aggregate.Record{Size: 200, Processes: 2, Speedup: 1.5, Efficiency: 0.75}))
	require.Len(t, series, 1)
	assert.Len(t, series[0].speedup, 1)
	assert.Equal(t, series[0].effic[0].Y, 0.75)
}

func TestTimeComparison(t *testing.T) {
	cfg := testConfig(t)
	path, err := TimeComparison(testSet(), cfg)
	require.NoError(t, err)
	assert.Equal(t, path, filepath.Join(cfg.PicturesDir, TimeComparisonFile))
	requirePNG(t, path)

	zero := core.Concat(testSet(), core.NewResultSet(core.Row{Size: 100, Time: 0, Memory: 1, Processes: 8}))
	_, err = TimeComparison(zero, cfg)
	require.NoError(t, err)

	_, err = TimeComparison(core.NewResultSet(), cfg)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestMemoryComparison(t *testing.T) {
	cfg := testConfig(t)
	path, err := MemoryComparison(testSet(), cfg)
	require.NoError(t, err)
	assert.Equal(t, path, filepath.Join(cfg.PicturesDir, MemoryComparisonFile))
	requirePNG(t, path)

	_, err = MemoryComparison(core.NewResultSet(), cfg)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHTMLReport(t *testing.T) {
	cfg := testConfig(t)
	set := testSet()
	records := aggregate.All(set, operator.NewMedianOp())
	records = append(records, aggregate.Record{
		Size: 300, Processes: 2,
		Speedup: math.NaN(), Efficiency: math.NaN(), SequentialTime: math.NaN(), ParallelTime: math.NaN(),
		Reason: aggregate.ReasonNoSequential,
	})

	path, err := HTMLReport(records, set, cfg)
	require.NoError(t, err)
	assert.Equal(t, path, filepath.Join(cfg.ReportsDir, HTMLReportFile))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(buf)
	assert.Equal(t, strings.Count(page, "<svg"), 3)
	assert.Contains(t, page, "2 Processes")
	assert.Contains(t, page, `class="undefined"`)
	assert.Contains(t, page, aggregate.ReasonNoSequential)
	assert.Contains(t, page, "n/a")

	entries, err := os.ReadDir(cfg.ReportsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestHTMLReport_Empty(t *testing.T) {
	_, err := HTMLReport(nil, core.NewResultSet(), testConfig(t))
	assert.ErrorIs(t, err, ErrNoData)
}
