package render

import (
	"fmt"
	"path/filepath"

	"mmreport/core"
)

const (
	SpeedupEfficiencyFile = "comprehensive_speedup_efficiency_comparison.png"
	TimeComparisonFile    = "time_comparison.png"
	MemoryComparisonFile  = "memory_comparison.png"
	HTMLReportFile        = "speedup_efficiency.html"
	AggregatesFile        = "speedup_efficiency.csv"
	SummaryFile           = "summary.csv"
)

// HistogramName encodes the input prefix, matrix size and, for parallel
// runs, the process count.
func HistogramName(prefix string, key core.Key) string {
	name := fmt.Sprintf("%s_size_%d", prefix, key.Size)
	if key.Processes > 0 {
		name += fmt.Sprintf("_proc_%d", key.Processes)
	}
	return name + ".png"
}

func HistogramPath(dir, prefix string, key core.Key) string {
	return filepath.Join(dir, HistogramName(prefix, key))
}
