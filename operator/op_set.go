package operator

import "fmt"

var opNames = []string{"count", "mean", "median", "min", "max", "std"}

func GetOpFromName(opName string) Op {
	switch opName {
	case "count":
		return NewCountOp()
	case "mean":
		return NewMeanOp()
	case "median":
		return NewMedianOp()
	case "min":
		return NewMinOp()
	case "max":
		return NewMaxOp()
	case "std":
		return NewStdOp()
	default:
		return nil
	}
}

func Names() []string {
	names := make([]string, len(opNames))
	copy(names, opNames)
	return names
}

// OpSet applies several named ops to the same values, keeping the order
// the names were given in.
type OpSet struct {
	ops []Op
}

func NewOpSet(operatorNames []string) (*OpSet, error) {
	ops := make([]Op, 0, len(operatorNames))
	for _, operatorName := range operatorNames {
		op := GetOpFromName(operatorName)
		if op == nil {
			return nil, fmt.Errorf("unknown operator %q", operatorName)
		}
		ops = append(ops, op)
	}
	return &OpSet{ops: ops}, nil
}

func (set *OpSet) Names() []string {
	names := make([]string, len(set.ops))
	for i, op := range set.ops {
		names[i] = op.Name()
	}
	return names
}

func (set *OpSet) Apply(values []float64) ([]float64, error) {
	results := make([]float64, len(set.ops))
	for i, op := range set.ops {
		result, err := op.Apply(values)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op.Name(), err)
		}
		results[i] = result
	}
	return results, nil
}
