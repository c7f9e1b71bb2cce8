// Package twi holds the topographic wetness index distribution: the ordered
// set of (ln(a/tanB), area proportion) pairs that partitions the watershed
// into wetness classes. Loaded once at simulation start, immutable after.
package twi

import (
	"github.com/maseology/topmodel/errors"
)

const proptol = 1e-6

// Distribution of wetness index values and their saturated-area proportions,
// conventionally ordered driest to wettest.
type Distribution struct {
	vals, fracs []float64
	mean        float64
}

// New validates and builds a Distribution. Proportions must each be positive
// and sum to 1 within tolerance.
func New(values, proportions []float64) (*Distribution, error) {
	if len(values) == 0 {
		return nil, errors.Validationf("twi: no bins supplied")
	}
	if len(values) != len(proportions) {
		return nil, errors.Validationf("twi: %d index values but %d proportions", len(values), len(proportions))
	}
	s, m := 0., 0.
	for i, p := range proportions {
		if p <= 0. {
			return nil, errors.Validationf("twi: bin %d has non-positive proportion %v", i, p)
		}
		s += p
		m += p * values[i]
	}
	if s < 1.-proptol || s > 1.+proptol {
		return nil, errors.Validationf("twi: proportions sum to %v, must sum to 1", s)
	}
	d := &Distribution{
		vals:  append([]float64(nil), values...),
		fracs: append([]float64(nil), proportions...),
		mean:  m / s,
	}
	return d, nil
}

// N returns the number of bins.
func (d *Distribution) N() int { return len(d.vals) }

// Value returns the wetness index of bin i.
func (d *Distribution) Value(i int) float64 { return d.vals[i] }

// AreaFrac returns the saturated-area proportion of bin i.
func (d *Distribution) AreaFrac(i int) float64 { return d.fracs[i] }

// Mean returns the area-weighted mean wetness index, the zero-reference for
// local saturation deficits.
func (d *Distribution) Mean() float64 { return d.mean }
