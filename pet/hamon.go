// Package pet supplies potential evapotranspiration series. The soil moisture
// engine treats PET as an opaque numeric input; Hamon is computed here only
// when the forcing file carries no pet column.
package pet

import (
	"math"
	"time"

	"github.com/maseology/goHydro/solirrad"
	"github.com/maseology/topmodel/errors"
)

const kpec = 1.2 // Hamon calibration coefficient (Lu et al., 2005)

// Hamon computes daily potential evapotranspiration (mm/day) from mean air
// temperature (Celsius) and latitude (decimal degrees).
//
//	PET = 0.1651 * Ld * RHOSAT * KPEC
//
// with Ld the daytime length in 12-hour units and RHOSAT the saturated vapour
// density at the daily mean temperature.
func Hamon(dates []time.Time, tempC []float64, latitudeDeg float64) ([]float64, error) {
	if len(dates) != len(tempC) {
		return nil, errors.Validationf("pet: %d dates but %d temperatures", len(dates), len(tempC))
	}
	if latitudeDeg < 0. || latitudeDeg > 90. {
		return nil, errors.Configurationf("latitude", latitudeDeg, "must be within [0,90]")
	}

	si := solirrad.New(latitudeDeg, 0., 0.)
	ep := make([]float64, len(dates))
	for i, d := range dates {
		t := tempC[i]
		ld := si.DaylightHours(d.YearDay()) / 12.
		esat := 6.108 * math.Exp(17.26939*t/(t+237.3))   // saturated vapour pressure [mb]
		rhosat := 216.7 * esat / (t + 273.3)             // saturated vapour density [g/m³]
		ep[i] = 0.1651 * math.Abs(ld) * rhosat * kpec
		if math.IsNaN(ep[i]) || math.IsInf(ep[i], 0) {
			return nil, errors.Invariant(i, "pet", ep[i])
		}
	}
	return ep, nil
}
