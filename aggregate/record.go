package aggregate

import (
	"math"

	"mmreport/core"
)

// Reasons a record is undefined.
const (
	ReasonNoSequential     = "no sequential samples"
	ReasonNoParallel       = "no parallel samples"
	ReasonZeroParallelTime = "parallel time is zero"
	ReasonNoProcesses      = "process count is not positive"
)

// Record is the speedup and efficiency of one (size, processes) pair.
// Times are seconds and Efficiency is a ratio, so 0.8 means 80 %.
// An undefined record carries NaN ratios and a Reason.
type Record struct {
	Size              int
	Processes         int
	SequentialTime    float64
	ParallelTime      float64
	Speedup           float64
	Efficiency        float64
	SequentialSamples int
	ParallelSamples   int
	Reason            string
}

func (record *Record) Defined() bool {
	return record.Reason == ""
}

func (record *Record) Key() core.Key {
	return core.Key{Size: record.Size, Processes: record.Processes}
}

func (record *Record) EfficiencyPercent() float64 {
	return record.Efficiency * 100
}

func (record *Record) undefine(reason string) {
	record.Speedup = math.NaN()
	record.Efficiency = math.NaN()
	record.Reason = reason
}
