package operator

import "mmreport/stats"

type MedianOp struct {
	OpType OpType
}

func NewMedianOp() *MedianOp {
	return &MedianOp{OpType: OpTypeMedian}
}

func (op *MedianOp) Type() OpType {
	return op.OpType
}

func (op *MedianOp) Name() string {
	return "median"
}

func (op *MedianOp) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return stats.Median(values)
}
