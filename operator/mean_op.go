package operator

import "github.com/montanaflynn/stats"

type MeanOp struct {
	OpType OpType
}

func NewMeanOp() *MeanOp {
	return &MeanOp{OpType: OpTypeMean}
}

func (op *MeanOp) Type() OpType {
	return op.OpType
}

func (op *MeanOp) Name() string {
	return "mean"
}

func (op *MeanOp) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return stats.Mean(values)
}

type StdOp struct {
	OpType OpType
}

func NewStdOp() *StdOp {
	return &StdOp{OpType: OpTypeStd}
}

func (op *StdOp) Type() OpType {
	return op.OpType
}

func (op *StdOp) Name() string {
	return "std"
}

// Apply returns the sample standard deviation; a single value has zero spread.
func (op *StdOp) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	if len(values) == 1 {
		return 0, nil
	}
	return stats.StandardDeviationSample(values)
}
