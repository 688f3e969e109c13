package operator

import "github.com/montanaflynn/stats"

type MaxOp struct {
	OpType OpType
}

func NewMaxOp() *MaxOp {
	return &MaxOp{OpType: OpTypeMax}
}

func (op *MaxOp) Type() OpType {
	return op.OpType
}

func (op *MaxOp) Name() string {
	return "max"
}

func (op *MaxOp) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return stats.Max(values)
}

type MinOp struct {
	OpType OpType
}

func NewMinOp() *MinOp {
	return &MinOp{OpType: OpTypeMin}
}

func (op *MinOp) Type() OpType {
	return op.OpType
}

func (op *MinOp) Name() string {
	return "min"
}

func (op *MinOp) Apply(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return stats.Min(values)
}
