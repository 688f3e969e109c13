package operator

type CountOp struct {
	OpType OpType
}

func NewCountOp() *CountOp {
	return &CountOp{OpType: OpTypeCount}
}

func (op *CountOp) Type() OpType {
	return op.OpType
}

func (op *CountOp) Name() string {
	return "count"
}

func (op *CountOp) Apply(values []float64) (float64, error) {
	return float64(len(values)), nil
}
