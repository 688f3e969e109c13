package operator

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

var samples = []float64{2.0, 2.2, 1.8, 9.0, 2.0}

func TestMedianOp_Apply(t *testing.T) {
	value, err := NewMedianOp().Apply(samples)
	require.NoError(t, err)
	assert.Equal(t, value, 2.0)
}

func TestMeanOp_Apply(t *testing.T) {
	value, err := NewMeanOp().Apply(samples)
	require.NoError(t, err)
	assert.InDelta(t, value, 3.4, 1e-12)
}

func TestMinMaxCountOp_Apply(t *testing.T) {
	min, err := NewMinOp().Apply(samples)
	require.NoError(t, err)
	max, err := NewMaxOp().Apply(samples)
	require.NoError(t, err)
	count, err := NewCountOp().Apply(samples)
	require.NoError(t, err)

	assert.Equal(t, min, 1.8)
	assert.Equal(t, max, 9.0)
	assert.Equal(t, count, 5.0)
}

func TestStdOp_Apply(t *testing.T) {
	value, err := NewStdOp().Apply([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, value, 2.138090, 1e-6)

	value, err = NewStdOp().Apply([]float64{3})
	require.NoError(t, err)
	assert.Equal(t, value, 0.0)
}

func TestOps_EmptyInput(t *testing.T) {
	for _, name := range []string{"mean", "median", "min", "max", "std"} {
		_, err := GetOpFromName(name).Apply(nil)
		assert.ErrorIs(t, err, ErrEmptyInput, name)
	}

	count, err := NewCountOp().Apply(nil)
	assert.NoError(t, err)
	assert.Equal(t, count, 0.0)
}

func TestOpSet(t *testing.T) {
	set, err := NewOpSet([]string{"count", "median", "max"})
	require.NoError(t, err)

	assert.Equal(t, set.Names(), []string{"count", "median", "max"})

	values, err := set.Apply(samples)
	require.NoError(t, err)
	assert.Equal(t, values, []float64{5, 2.0, 9.0})
}

func TestOpSet_UnknownOperator(t *testing.T) {
	_, err := NewOpSet([]string{"median", "mode"})
	assert.Error(t, err)
}

func TestGetOpFromName(t *testing.T) {
	for _, name := range Names() {
		op := GetOpFromName(name)
		require.NotNil(t, op, name)
		assert.Equal(t, op.Name(), name)
	}
	assert.Nil(t, GetOpFromName("p99"))
}
