package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, fn := range AllFuncs {
		got, err := ByName(fn.Name())
		require.NoError(t, err)
		assert.Equal(t, fn.Name(), got.Name())
	}

	_, err := ByName("no-such-problem")
	assert.Error(t, err)
}

func TestOptimaConsistency(t *testing.T) {
	// The recorded optimum objective must match the objective function
	// evaluated at the recorded position.
	for _, fn := range AllFuncs {
		for _, opt := range fn.Optima() {
			assert.InDelta(t, opt.Obj, fn.Objective(opt.Pos), 0.5, "problem %v", fn.Name())
		}
	}
}

func TestViolationsNonNegative(t *testing.T) {
	for _, fn := range AllFuncs {
		low, up := fn.Bounds()
		require.Equal(t, len(low), len(up), "problem %v", fn.Name())

		// probe corners and midpoint of the box
		probes := [][]float64{low, up, mid(low, up)}
		for _, x := range probes {
			for i, v := range fn.Violations(x) {
				assert.GreaterOrEqual(t, v, 0.0, "problem %v constraint %v at %v", fn.Name(), i, x)
			}
		}
	}
}

func TestTwoVarDesignConvention(t *testing.T) {
	fn := TwoVarDesign{}

	// (50,50): g1 is satisfied (outside the first circle) and g2 violated
	x := []float64{50, 50}
	raw := fn.RawMargins(x)
	viol := fn.Violations(x)

	require.Len(t, viol, 2)
	assert.Positive(t, raw[0])
	assert.Zero(t, viol[0])
	assert.Negative(t, raw[1])
	assert.Equal(t, -raw[1], viol[1])
}

func TestWeldedBeamConvention(t *testing.T) {
	fn := WeldedBeam{}

	// a comfortably feasible design: thick weld, stubby beam
	x := []float64{0.4, 4, 8, 0.5}
	for i, g := range fn.RawMargins(x) {
		assert.LessOrEqual(t, g, 0.0, "margin %v", i)
	}
	for i, v := range fn.Violations(x) {
		assert.Zero(t, v, "violation %v", i)
	}

	// minimum weld thickness constraint (g5) violated
	bad := []float64{0.1, 4, 8, 0.5}
	raw := fn.RawMargins(bad)
	viol := fn.Violations(bad)
	assert.Positive(t, raw[4])
	assert.Equal(t, raw[4], viol[4])
}

func TestCounted(t *testing.T) {
	c := NewCounted(WeldedBeam{})
	x := []float64{0.4, 4, 8, 0.5}

	c.Objective(x)
	c.Objective(x)
	assert.Equal(t, 2, c.Evals())

	// violations and margins do not count as objective evaluations
	c.Violations(x)
	c.RawMargins(x)
	assert.Equal(t, 2, c.Evals())

	c.ResetEvals()
	assert.Zero(t, c.Evals())

	assert.Equal(t, 4, c.Dim())
	assert.NotNil(t, c.RawMargins(x))
}

func mid(low, up []float64) []float64 {
	m := make([]float64, len(low))
	for i := range m {
		m[i] = (low[i] + up[i]) / 2
	}
	return m
}
