package render

import (
	"fmt"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"mmreport/aggregate"
	"mmreport/config"
)

type series struct {
	processes int
	speedup   plotter.XYs
	effic     plotter.XYs
}

// speedupSeries keeps the defined records, one series per process count
// ordered by process count.
func speedupSeries(records []aggregate.Record) []series {
	byProcesses := aggregate.ByProcesses(records)
	counts := make([]int, 0, len(byProcesses))
	for processes := range byProcesses {
		counts = append(counts, processes)
	}
	sort.Ints(counts)

	all := make([]series, 0, len(counts))
	for _, processes := range counts {
		s := series{processes: processes}
		for _, record := range byProcesses[processes] {
			if !record.Defined() {
				continue
			}
			s.speedup = append(s.speedup, plotter.XY{X: float64(record.Size), Y: record.Speedup})
			s.effic = append(s.effic, plotter.XY{X: float64(record.Size), Y: record.Efficiency})
		}
		if len(s.speedup) == 0 {
			log.Warnf("No defined speedup for %d processes, leaving it out", processes)
			continue
		}
		sort.Slice(s.speedup, func(i, j int) bool { return s.speedup[i].X < s.speedup[j].X })
		sort.Slice(s.effic, func(i, j int) bool { return s.effic[i].X < s.effic[j].X })
		all = append(all, s)
	}
	return all
}

func addSeries(p *plot.Plot, i int, label string, xys plotter.XYs) error {
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(i)
	points.Color = plotutil.Color(i)
	points.Shape = plotutil.Shape(i)
	p.Add(line, points)
	p.Legend.Add(label, line, points)
	return nil
}

// SpeedupEfficiency writes the two-panel speedup/efficiency comparison.
func SpeedupEfficiency(records []aggregate.Record, cfg *config.Config) (string, error) {
	all := speedupSeries(records)
	if len(all) == 0 {
		return "", ErrNoData
	}

	speedup := newPlot("Speedup Comparison Across Different Process Counts", "Matrix Size", "Speedup")
	efficiency := newPlot("Efficiency Comparison Across Different Process Counts", "Matrix Size", "Efficiency")
	for i, s := range all {
		label := fmt.Sprintf("%d Processes", s.processes)
		if err := addSeries(speedup, i, label, s.speedup); err != nil {
			return "", err
		}
		if err := addSeries(efficiency, i, label, s.effic); err != nil {
			return "", err
		}
	}
	speedup.Legend.Top = true
	efficiency.Legend.Top = true
	speedup.Y.Min = 0
	efficiency.Y.Min = 0

	path := filepath.Join(cfg.PicturesDir, SpeedupEfficiencyFile)
	if err := savePNG(path, cfg, speedup, efficiency); err != nil {
		return "", err
	}
	log.Infof("Comprehensive comparison plot written to %s", path)
	return path, nil
}
