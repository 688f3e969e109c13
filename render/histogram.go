package render

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"mmreport/config"
	"mmreport/core"
	"mmreport/stats"
)

func versionInfo(key core.Key) string {
	if key.Processes == 0 {
		return "Sequential"
	}
	return fmt.Sprintf("Parallel (%d processes)", key.Processes)
}

// Histograms writes one execution-time histogram per (size, processes)
// group of set and returns the written paths. Times are shown in ms.
func Histograms(set *core.ResultSet, prefix string, cfg *config.Config) ([]string, error) {
	groups := set.Groups()
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	paths := make([]string, 0, len(groups))
	for _, group := range groups {
		path := HistogramPath(cfg.PicturesDir, prefix, group.Key)
		if err := histogram(path, group, cfg); err != nil {
			return paths, fmt.Errorf("%s: %w", path, err)
		}
		log.Infof("Created histogram for size %dx%d (%s)",
			group.Key.Size, group.Key.Size, versionInfo(group.Key))
		paths = append(paths, path)
	}
	return paths, nil
}

func histogram(path string, group core.Group, cfg *config.Config) error {
	millis := group.Rows.Times()
	for i := range millis {
		millis[i] *= 1000
	}
	bins := stats.Bins(millis, cfg.Bins)
	if len(bins) == 0 {
		return ErrNoData
	}

	hbins := make([]plotter.HistogramBin, len(bins))
	maxCount := 0.0
	for i, bin := range bins {
		hbins[i] = plotter.HistogramBin{Min: bin.Min, Max: bin.Max, Weight: bin.Count}
		maxCount = math.Max(maxCount, bin.Count)
	}
	h := &plotter.Histogram{
		Bins:      hbins,
		Width:     bins[0].Max - bins[0].Min,
		FillColor: plotutil.Color(1),
		LineStyle: plotter.DefaultLineStyle,
		LogY:      cfg.LogScale,
	}

	p := newPlot(
		fmt.Sprintf("Execution Time Distribution for %dx%d Matrix\n%s",
			group.Key.Size, group.Key.Size, versionInfo(group.Key)),
		"Execution Time (ms)",
		"Frequency")
	p.Add(h)
	if cfg.LogScale {
		// Every non-empty bin holds at least one sample.
		useLogY(p)
		p.Y.Min = 0.5
		p.Y.Max = math.Max(maxCount*1.5, 2)
	} else {
		p.Y.Min = 0
	}
	return savePNG(path, cfg, p)
}
