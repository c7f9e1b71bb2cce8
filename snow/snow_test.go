package snow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulationBelowCutoff(t *testing.T) {
	p, err := NewDefaultPack(1.)
	require.NoError(t, err)

	out, err := p.Update(25.4, 20.) // one inch of snow at 20F
	require.NoError(t, err)
	assert.Zero(t, out, "no liquid water reaches the soil below the cutoff")
	assert.InDelta(t, 25.4, p.SWE(), 1e-12)

	out, err = p.Update(12.7, 31.9)
	require.NoError(t, err)
	assert.Zero(t, out)
	assert.InDelta(t, 38.1, p.SWE(), 1e-12)
}

func TestDegreeDayMelt(t *testing.T) {
	p, err := NewDefaultPack(1.)
	require.NoError(t, err)
	p.Sto = 10. // inches

	out, err := p.Update(0., 42.) // 10F above cutoff, dry
	require.NoError(t, err)
	assert.InDelta(t, 0.06*10.*25.4, out, 1e-9)
	assert.InDelta(t, (10.-0.6)*25.4, p.SWE(), 1e-9)
}

func TestMeltCappedAtPack(t *testing.T) {
	p, err := NewDefaultPack(1.)
	require.NoError(t, err)
	p.Sto = 0.1

	out, err := p.Update(0., 80.)
	require.NoError(t, err)
	assert.InDelta(t, 0.1*25.4, out, 1e-9)
	assert.Zero(t, p.SWE())

	// bare ground passes warm rain straight through
	out, err = p.Update(10., 50.)
	require.NoError(t, err)
	assert.InDelta(t, 10., out, 1e-9)
}

func TestRainOnSnowHeavilyForested(t *testing.T) {
	p, err := NewPack(32., 1., RainOnSnowHeavilyForested{RainCoeff: 0.007}, TemperatureIndex{MeltCoeff: 0.06})
	require.NoError(t, err)
	p.Sto = 50.

	pin := 1.0 // inch of rain
	out, err := p.Update(pin*25.4, 40.)
	require.NoError(t, err)
	melt := (0.074+0.007*pin)*8. + 0.05
	assert.InDelta(t, (pin+melt)*25.4, out, 1e-9)
}

func TestRainOnSnowOpenPartlyForested(t *testing.T) {
	wet := RainOnSnowOpenPartlyForested{RainCoeff: 0.007, WindCoeff: 0.5, Wind: 10.}
	p, err := NewPack(32., 1., wet, TemperatureIndex{MeltCoeff: 0.06})
	require.NoError(t, err)
	p.Sto = 50.

	pin := 0.5
	out, err := p.Update(pin*25.4, 36.)
	require.NoError(t, err)
	melt := (0.029+0.0084*0.5*10.+0.007*pin)*4. + 0.09
	assert.InDelta(t, (pin+melt)*25.4, out, 1e-9)
}

func TestSubDailyTimestepScalesMelt(t *testing.T) {
	p, err := NewDefaultPack(0.25)
	require.NoError(t, err)
	p.Sto = 10.

	out, err := p.Update(0., 42.)
	require.NoError(t, err)
	assert.InDelta(t, 0.06*10.*0.25*25.4, out, 1e-9)
}

func TestUpdateRejectsNegativePrecip(t *testing.T) {
	p, err := NewDefaultPack(1.)
	require.NoError(t, err)
	_, err = p.Update(-1., 40.)
	assert.Error(t, err)
}

func TestNewPackValidation(t *testing.T) {
	_, err := NewPack(32., 0., RainOnSnowHeavilyForested{}, TemperatureIndex{})
	assert.Error(t, err)
	_, err = NewPack(32., 1., nil, TemperatureIndex{})
	assert.Error(t, err)
}
