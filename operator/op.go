package operator

import "errors"

var ErrEmptyInput = errors.New("operator applied to no values")

type OpType int

const (
	OpTypeCount OpType = iota
	OpTypeMean
	OpTypeMedian
	OpTypeMin
	OpTypeMax
	OpTypeStd
)

// Op reduces repeated measurements of one group to a single value.
type Op interface {
	Type() OpType
	Name() string
	Apply([]float64) (float64, error)
}
