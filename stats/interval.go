package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type Bounds struct {
	Lower float64
	Upper float64
}

type CI struct {
	Mean    float64
	LowerCI float64
	UpperCI float64
}

// MeanCI is the normal-approximation confidence interval of the mean,
// clamped to the observed range.
func MeanCI(summary *Summary, confidenceLevel float64) *CI {
	bounds := &Bounds{Lower: summary.Min, Upper: summary.Max}
	ci := &CI{
		Mean:    summary.Mean,
		LowerCI: summary.Mean,
		UpperCI: summary.Mean,
	}
	if summary.Count < 2 {
		return ci
	}

	probability := (1 + confidenceLevel) / 2
	z := distuv.UnitNormal.Quantile(probability)

	if math.IsInf(z, 0) || math.IsNaN(z) {
		ci.LowerCI = bounds.Lower
		ci.UpperCI = bounds.Upper
	} else {
		se := summary.SD / math.Sqrt(float64(summary.Count))
		ci.LowerCI = math.Max(ci.Mean-z*se, bounds.Lower)
		ci.UpperCI = math.Min(ci.Mean+z*se, bounds.Upper)
	}
	return ci
}
