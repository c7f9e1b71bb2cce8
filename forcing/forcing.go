// Package forcing holds the pre-loaded climate series driving a model run:
// dated precipitation and temperature, with optional externally supplied PET
// and observed flow. All series are read once and equal-length.
package forcing

import (
	"time"

	"github.com/maseology/topmodel/errors"
)

// Forcing series. P and PET are depths per timestep (mm), TempC is mean air
// temperature (Celsius), Qobs observed streamflow (mm/timestep, may be nil).
type Forcing struct {
	T           []time.Time
	P, TempC    []float64
	PET, Qobs   []float64 // optional columns
	IntervalSec float64
}

// Nt returns the number of timesteps.
func (frc *Forcing) Nt() int { return len(frc.T) }

// TimestepFraction returns the timestep as a fraction of one day.
func (frc *Forcing) TimestepFraction() float64 { return frc.IntervalSec / 86400. }

// Check validates series lengths and the timestep before any simulation runs.
func (frc *Forcing) Check() error {
	nt := len(frc.T)
	if nt < 2 {
		return errors.Validationf("forcing: %d timesteps, need at least 2", nt)
	}
	if len(frc.P) != nt || len(frc.TempC) != nt {
		return errors.Validationf("forcing: series lengths differ: %d dates, %d precipitation, %d temperature",
			nt, len(frc.P), len(frc.TempC))
	}
	if frc.PET != nil && len(frc.PET) != nt {
		return errors.Validationf("forcing: pet series length %d, expected %d", len(frc.PET), nt)
	}
	if frc.Qobs != nil && len(frc.Qobs) != nt {
		return errors.Validationf("forcing: flow_observed series length %d, expected %d", len(frc.Qobs), nt)
	}
	if frc.IntervalSec <= 0. || frc.IntervalSec > 86400. {
		return errors.Validationf("forcing: timestep of %v seconds, must be positive and no longer than 1 day", frc.IntervalSec)
	}
	for i := 1; i < nt; i++ {
		if frc.T[i].Sub(frc.T[i-1]).Seconds() != frc.IntervalSec {
			return errors.Validationf("forcing: irregular timestep at %v", frc.T[i])
		}
	}
	for i, p := range frc.P {
		if p < 0. {
			return errors.Validationf("forcing: negative precipitation %v at %v", p, frc.T[i])
		}
	}
	return nil
}
