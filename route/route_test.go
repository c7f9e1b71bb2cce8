package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(v []float64) float64 {
	s := 0.
	for _, x := range v {
		s += x
	}
	return s
}

func TestUniformWeights(t *testing.T) {
	w := Uniform{}.Weights(2.5)
	require.Len(t, w, 3)
	assert.InDelta(t, 0.4, w[0], 1e-12)
	assert.InDelta(t, 0.4, w[1], 1e-12)
	assert.InDelta(t, 0.2, w[2], 1e-12)
	assert.InDelta(t, 1., sum(w), 1e-6)
}

func TestTriangularWeights(t *testing.T) {
	w := Triangular{}.Weights(4.)
	require.Len(t, w, 4)
	assert.InDelta(t, 1., sum(w), 1e-6)
	// symmetric about the midpoint
	assert.InDelta(t, w[0], w[3], 1e-12)
	assert.InDelta(t, w[1], w[2], 1e-12)
	assert.Greater(t, w[1], w[0])
}

func TestNewFloorsTravelTime(t *testing.T) {
	// travel time below one timestep collapses to a single full weight
	tdh, err := New(5., 100., Uniform{})
	require.NoError(t, err)
	assert.Equal(t, 1, tdh.Horizon())
	assert.InDelta(t, 1., tdh.Weight(0), 1e-12)
}

func TestNewRejectsNonPositiveInputs(t *testing.T) {
	_, err := New(0., 10., Uniform{})
	assert.Error(t, err)
	_, err = New(100., 0., Uniform{})
	assert.Error(t, err)
}

func TestNewFromWeights(t *testing.T) {
	tdh, err := NewFromWeights([]float64{2., 1., 1.})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, tdh.Weight(0), 1e-12)
	assert.InDelta(t, 1., tdh.Weight(0)+tdh.Weight(1)+tdh.Weight(2), 1e-6)

	_, err = NewFromWeights(nil)
	assert.Error(t, err)
	_, err = NewFromWeights([]float64{0.5, -0.1})
	assert.Error(t, err)
	_, err = NewFromWeights([]float64{0., 0.})
	assert.Error(t, err)
}

func TestRouteConservesImpulse(t *testing.T) {
	tdh, err := New(35., 10., Triangular{})
	require.NoError(t, err)

	qt := make([]float64, 20)
	qt[3] = 7.
	q := tdh.Route(qt)
	assert.InDelta(t, 7., sum(q), 1e-9)
	for j := 0; j < 3; j++ {
		assert.Zero(t, q[j], "causal: nothing arrives before the impulse")
	}
}

func TestRouteCausalTruncation(t *testing.T) {
	tdh, err := NewFromWeights([]float64{0.25, 0.5, 0.25})
	require.NoError(t, err)
	q := tdh.Route([]float64{8., 0., 0., 0.})
	assert.InDelta(t, 2., q[0], 1e-12)
	assert.InDelta(t, 4., q[1], 1e-12)
	assert.InDelta(t, 2., q[2], 1e-12)
	assert.Zero(t, q[3])
}

func TestStepperMatchesRoute(t *testing.T) {
	tdh, err := New(47., 10., Uniform{})
	require.NoError(t, err)

	qt := make([]float64, 60)
	for j := range qt {
		qt[j] = math.Abs(math.Sin(float64(j)/3.)) * 12.
	}
	want := tdh.Route(qt)
	st := tdh.Stepper()
	for j, v := range qt {
		assert.InDelta(t, want[j], st.Step(v), 1e-12)
	}
}

func TestChannelLengthFromArea(t *testing.T) {
	a := 1.e6
	assert.InDelta(t, 2.*math.Sqrt(a/math.Pi), ChannelLengthFromArea(a), 1e-9)
}
