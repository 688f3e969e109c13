package stats

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
)

var ErrNoSamples = errors.New("no samples")

// SampleStatistics accumulates repeated measurements of one quantity. Mean
// and variance are streamed; the raw values are kept for order statistics.
type SampleStatistics struct {
	values     []float64
	valueStats *Welford
	min        float64
	max        float64
}

func NewSampleStatistics() *SampleStatistics {
	return &SampleStatistics{
		values:     make([]float64, 0),
		valueStats: NewWelford(),
		min:        math.Inf(1),
		max:        math.Inf(-1),
	}
}

func FromValues(values []float64) *SampleStatistics {
	sample := NewSampleStatistics()
	for _, value := range values {
		sample.Append(value)
	}
	return sample
}

func (sample *SampleStatistics) Append(value float64) {
	sample.values = append(sample.values, value)
	sample.valueStats.Update(value)
	sample.min = math.Min(sample.min, value)
	sample.max = math.Max(sample.max, value)
}

type Summary struct {
	Count  int
	Mean  float64
	SD    float64
	CV    float64
	Min   float64
	Max   float64
	P95   float64
}

func (sample *SampleStatistics) Summary() (*Summary, error) {
	if len(sample.values) == 0 {
		return nil, ErrNoSamples
	}
	// Percentile needs two samples to interpolate.
	p95 := sample.values[0]
	if len(sample.values) > 1 {
		var err error
		p95, err = stats.Percentile(sample.values, 95)
		if err != nil {
			return nil, err
		}
	}
	return &Summary{
		Count: len(sample.values),
		Mean:  sample.valueStats.GetMean(),
		SD:    sample.valueStats.GetSD(),
		CV:    sample.valueStats.GetCV(),
		Min:   sample.min,
		Max:   sample.max,
		P95:   p95,
	}, nil
}

func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoSamples
	}
	return stats.Median(values)
}
