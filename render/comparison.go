package render

import (
	"fmt"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"mmreport/config"
	"mmreport/core"
	"mmreport/stats"
)

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func seriesLabel(processes int) string {
	if processes == 0 {
		return "Sequential"
	}
	return fmt.Sprintf("%d Processes", processes)
}

// seriesKeys lists the sequential run (when present) and then every
// parallel process count.
func seriesKeys(set *core.ResultSet) []int {
	keys := make([]int, 0)
	if !set.Sequential().Empty() {
		keys = append(keys, 0)
	}
	return append(keys, set.Processes()...)
}

// TimeComparison plots the mean execution time per size for every process
// count, with confidence intervals as error bars.
func TimeComparison(set *core.ResultSet, cfg *config.Config) (string, error) {
	if set.Empty() {
		return "", ErrNoData
	}

	logY := cfg.LogScale
	for _, value := range set.Times() {
		if value <= 0 && logY {
			log.Warn("Zero execution time present, time comparison uses a linear axis")
			logY = false
		}
	}

	p := newPlot(
		fmt.Sprintf("Mean Execution Time (%.0f%% CI)", cfg.Confidence*100),
		"Matrix Size",
		"Execution Time (s)")
	for i, processes := range seriesKeys(set) {
		rows := set.WithProcesses(processes)
		sizes := rows.Sizes()
		points := errorPoints{
			XYs:     make(plotter.XYs, len(sizes)),
			YErrors: make(plotter.YErrors, len(sizes)),
		}
		for j, size := range sizes {
			summary, err := stats.FromValues(rows.WithSize(size).Times()).Summary()
			if err != nil {
				return "", err
			}
			ci := stats.MeanCI(summary, cfg.Confidence)
			points.XYs[j] = plotter.XY{X: float64(size), Y: summary.Mean}
			points.YErrors[j].Low = summary.Mean - ci.LowerCI
			points.YErrors[j].High = ci.UpperCI - summary.Mean
		}
		if err := addSeries(p, i, seriesLabel(processes), points.XYs); err != nil {
			return "", err
		}
		bars, err := plotter.NewYErrorBars(points)
		if err != nil {
			return "", err
		}
		bars.Color = plotutil.Color(i)
		p.Add(bars)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	if logY {
		useLogY(p)
	}

	path := filepath.Join(cfg.PicturesDir, TimeComparisonFile)
	if err := savePNG(path, cfg, p); err != nil {
		return "", err
	}
	log.Infof("Time comparison plot written to %s", path)
	return path, nil
}

// MemoryComparison draws grouped bars of the reduced memory use per size.
func MemoryComparison(set *core.ResultSet, cfg *config.Config) (string, error) {
	if set.Empty() {
		return "", ErrNoData
	}
	op := cfg.Op()
	sizes := set.Sizes()
	keys := seriesKeys(set)

	p := newPlot("Memory Usage by Matrix Size", "Matrix Size", "Memory (MB)")
	barWidth := vg.Points(48 / float64(len(keys)))
	for i, processes := range keys {
		rows := set.WithProcesses(processes)
		values := make(plotter.Values, len(sizes))
		for j, size := range sizes {
			memories := rows.WithSize(size).Memories()
			if len(memories) == 0 {
				continue
			}
			value, err := op.Apply(memories)
			if err != nil {
				return "", err
			}
			values[j] = value
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return "", err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		bars.Offset = barWidth * vg.Length(float64(i)-float64(len(keys)-1)/2)
		p.Add(bars)
		p.Legend.Add(seriesLabel(processes), bars)
	}
	labels := make([]string, len(sizes))
	for i, size := range sizes {
		labels[i] = strconv.Itoa(size)
	}
	p.NominalX(labels...)
	p.Legend.Top = true
	p.Legend.Left = true
	p.Y.Min = 0

	path := filepath.Join(cfg.PicturesDir, MemoryComparisonFile)
	if err := savePNG(path, cfg, p); err != nil {
		return "", err
	}
	log.Infof("Memory comparison plot written to %s", path)
	return path, nil
}
