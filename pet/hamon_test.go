package pet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dates(y int, m time.Month, d, n int) []time.Time {
	ds := make([]time.Time, n)
	for i := range ds {
		ds[i] = time.Date(y, m, d+i, 0, 0, 0, 0, time.UTC)
	}
	return ds
}

func TestHamon(t *testing.T) {
	ds := dates(2019, time.July, 1, 5)
	ep, err := Hamon(ds, []float64{22., 24., 25.5, 23., 21.}, 43.5)
	require.NoError(t, err)
	require.Len(t, ep, 5)
	for i, v := range ep {
		assert.Greater(t, v, 0., "timestep %d", i)
		assert.Less(t, v, 15., "summer daily pet stays within a plausible range")
	}
	// warmer day, longer vapour column
	assert.Greater(t, ep[2], ep[4])
}

func TestHamonSeasonality(t *testing.T) {
	temp := []float64{10.}
	summer, err := Hamon(dates(2019, time.June, 21, 1), temp, 43.5)
	require.NoError(t, err)
	winter, err := Hamon(dates(2019, time.December, 21, 1), temp, 43.5)
	require.NoError(t, err)
	assert.Greater(t, summer[0], winter[0], "longer daylight gives more pet at equal temperature")
}

func TestHamonSubzeroTemperature(t *testing.T) {
	ep, err := Hamon(dates(2019, time.January, 10, 1), []float64{-18.}, 43.5)
	require.NoError(t, err)
	assert.Greater(t, ep[0], 0.)
	assert.Less(t, ep[0], 1.)
}

func TestHamonValidation(t *testing.T) {
	ds := dates(2019, time.July, 1, 2)
	_, err := Hamon(ds, []float64{20.}, 43.5)
	assert.Error(t, err)
	_, err = Hamon(ds, []float64{20., 21.}, 95.)
	assert.Error(t, err)
}
