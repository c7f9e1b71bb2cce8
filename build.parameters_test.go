package topmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paramsCSV = `name,value,units,description
scaling_parameter,10.0,millimeters,exponential decay of transmissivity with deficit
saturated_hydraulic_conductivity,150.0,millimeters/day,
macropore_fraction,0.2,fraction,
soil_depth_total,1.5,meters,
soil_depth_ab_horizon,0.5,meters,
field_capacity_fraction,0.25,fraction,
latitude,41.0,degrees,
basin_area_total,8000000.0,square meters,
impervious_area_fraction,0.1,fraction,
flow_initial,0.8,millimeters/day,
snowmelt_temperature_cutoff,32.0,degrees fahrenheit,
snowmelt_rate_coeff,0.06,inches/degree fahrenheit,
snowmelt_rate_coeff_with_rain,0.007,1/degrees fahrenheit,
`

func TestReadParamsCSV(t *testing.T) {
	pv, err := readParamsCSV(strings.NewReader(paramsCSV))
	require.NoError(t, err)
	assert.Equal(t, 10.0, pv["scaling_parameter"])
	assert.Equal(t, 0.25, pv["field_capacity_fraction"])
	assert.Equal(t, 8.e6, pv["basin_area_total"])
}

func TestReadParamsCSVRejectsBadHeader(t *testing.T) {
	_, err := readParamsCSV(strings.NewReader("parameter,val\nscaling_parameter,10\n"))
	assert.Error(t, err)
	_, err = readParamsCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestBuildParams(t *testing.T) {
	pv, err := readParamsCSV(strings.NewReader(paramsCSV))
	require.NoError(t, err)
	par, err := buildParams(pv, 1.)
	require.NoError(t, err)

	assert.Equal(t, 10., par.M)
	assert.Equal(t, 150., par.Ksat)
	assert.Equal(t, 0.8, par.FlowInitial)
	assert.Equal(t, 1., par.TimestepFraction)
	// defaulted rows
	assert.Equal(t, 1., par.SoilDepthRoots)
	assert.Equal(t, 10., par.ChannelVelocityAvg)
	assert.Zero(t, par.ChannelLengthMax)
}

func TestBuildParamsMissingRequiredRow(t *testing.T) {
	pv, err := readParamsCSV(strings.NewReader(paramsCSV))
	require.NoError(t, err)
	delete(pv, "latitude")
	_, err = buildParams(pv, 1.)
	assert.Error(t, err)
}

func TestBuildParamsRejectsOutOfRange(t *testing.T) {
	pv, err := readParamsCSV(strings.NewReader(paramsCSV))
	require.NoError(t, err)
	pv["macropore_fraction"] = 1.5
	_, err = buildParams(pv, 1.)
	assert.Error(t, err)
}

func TestBuildSnowCoeffs(t *testing.T) {
	pv, err := readParamsCSV(strings.NewReader(paramsCSV))
	require.NoError(t, err)
	sc := buildSnowCoeffs(pv)
	assert.Equal(t, 32., sc.cutoffF)
	assert.Equal(t, 0.06, sc.meltCoeff)

	sc = buildSnowCoeffs(map[string]float64{})
	assert.Equal(t, 0.007, sc.rainCoeff)
}
