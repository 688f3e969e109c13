package aggregate

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"mmreport/core"
	"mmreport/operator"
)

// Compute reduces both sample groups with op and derives
// speedup = S / P and efficiency = speedup / processes.
func Compute(seqTimes, parTimes []float64, processes int, op operator.Op) Record {
	record := Record{
		Processes:         processes,
		SequentialSamples: len(seqTimes),
		ParallelSamples:   len(parTimes),
		SequentialTime:    reduce(seqTimes, op),
		ParallelTime:      reduce(parTimes, op),
	}

	switch {
	case math.IsNaN(record.SequentialTime):
		record.undefine(ReasonNoSequential)
	case math.IsNaN(record.ParallelTime):
		record.undefine(ReasonNoParallel)
	case processes <= 0:
		record.undefine(ReasonNoProcesses)
	case record.ParallelTime == 0:
		record.undefine(ReasonZeroParallelTime)
	default:
		record.Speedup = record.SequentialTime / record.ParallelTime
		record.Efficiency = record.Speedup / float64(processes)
	}
	return record
}

// reduce returns NaN for an empty group.
func reduce(values []float64, op operator.Op) float64 {
	value, err := op.Apply(values)
	if err != nil || len(values) == 0 {
		return math.NaN()
	}
	return value
}

// ForSize aggregates the sequential rows of size against the rows of size
// run on the given number of processes.
func ForSize(set *core.ResultSet, size, processes int, op operator.Op) Record {
	rows := set.WithSize(size)
	record := Compute(
		rows.Sequential().Times(),
		rows.WithProcesses(processes).Times(),
		processes,
		op)
	record.Size = size
	return record
}

// All aggregates every parallel process count against every size that has
// sequential measurements. Records are ordered by processes, then size.
func All(set *core.ResultSet, op operator.Op) []Record {
	sizes := set.Sequential().Sizes()
	records := make([]Record, 0)
	for _, processes := range set.Processes() {
		for _, size := range sizes {
			record := ForSize(set, size, processes, op)
			if !record.Defined() {
				log.Warnf("Speedup for %s is undefined: %s", record.Key(), record.Reason)
			}
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Key().Less(records[j].Key())
	})
	return records
}

// ByProcesses splits records into one series per process count.
func ByProcesses(records []Record) map[int][]Record {
	series := make(map[int][]Record)
	for _, record := range records {
		series[record.Processes] = append(series[record.Processes], record)
	}
	return series
}
