// Package topmodel implements a TWI-binned TOPMODEL rainfall-runoff engine
// after the USGS formulation of Wolock (1993): a variable-source-area model
// distributing soil moisture across topographic wetness index classes rather
// than uniformly over the watershed. The engine advances one timestep at a
// time, partitioning effective precipitation minus PET across bins, draining
// the unsaturated zone toward the water table, and closing the water balance
// with the exponential deficit-baseflow relation qb = qo*exp(-Dm/m).
package topmodel

import (
	"fmt"
	"math"

	"github.com/maseology/topmodel/errors"
	"github.com/maseology/topmodel/twi"
)

const (
	nearzero     = 1e-8
	recessionCap = 100. // Dm/m beyond which baseflow is treated as zero
)

// Model owns the static configuration of a run: checked parameters, the TWI
// distribution, and derived soil hydraulic constants. Per-bin scratch arrays
// are allocated once; a Model instance must not be shared across concurrent
// runs (each run owns its Model and State).
type Model struct {
	par          Params
	vals, fracs  []float64 // TWI bin index values and area proportions
	twiMean      float64
	nb           int
	qomax        float64 // subsurface flow at full saturation (Wolock eq 32) [mm/timestep]
	srmax        float64 // root zone storage capacity (eq 36) [mm]
	qv0          float64 // vertical drainage flux antecedent, Ksat*dtf (eq 23)
	q0           float64 // initial flow per timestep
	scr          scratch
}

// scratch is the per-bin ownership arena, indexed by bin position.
type scratch struct {
	ex, qv, rch, qvc, wbal []float64
}

// Flux carries the instantaneous flow components generated in one timestep,
// all in mm per timestep over the basin area.
type Flux struct {
	Qof    float64 // saturation-excess overland flow
	Qb     float64 // subsurface (base) flow
	Qv     float64 // area-weighted vertical drainage flux (diagnostic)
	QvChan float64 // drainage in excess of local deficit, emitted to the channel
	Qimp   float64 // impervious-area flow
	Qt     float64 // total generated flow
	Dm     float64 // watershed average saturation deficit after the step
}

// New builds a Model from checked parameters and a TWI distribution.
func New(par Params, dist *twi.Distribution) (*Model, error) {
	if err := par.check(); err != nil {
		return nil, err
	}
	if dist == nil || dist.N() < 1 {
		return nil, errors.Validationf("topmodel: a TWI distribution with at least one bin is required")
	}
	if par.SoilDepthRoots > par.SoilDepthTotal {
		par.SoilDepthRoots = par.SoilDepthTotal
	}

	nb := dist.N()
	m := &Model{
		par:     par,
		vals:    make([]float64, nb),
		fracs:   make([]float64, nb),
		twiMean: dist.Mean(),
		nb:      nb,
	}
	for j := 0; j < nb; j++ {
		m.vals[j] = dist.Value(j)
		m.fracs[j] = dist.AreaFrac(j)
	}

	// maximum saturated transmissivity, assuming the AB horizon conducts two
	// orders of magnitude more than the C horizon (Wolock eq 41)
	soilDepthC := par.SoilDepthTotal - par.SoilDepthAB
	t0 := par.SoilDepthAB*100.*par.Ksat + soilDepthC*par.Ksat

	m.qomax = t0 * math.Exp(-m.twiMean) * par.TimestepFraction
	m.srmax = par.SoilDepthRoots * 1000. * par.FieldCapacityFrac
	m.qv0 = par.Ksat * par.TimestepFraction
	m.q0 = par.FlowInitial * par.TimestepFraction

	if m.qomax <= 0. {
		return nil, errors.Configurationf("flow_subsurface_max", m.qomax, "must be positive; check conductivity and twi mean")
	}
	m.scr = scratch{
		ex:   make([]float64, nb),
		qv:   make([]float64, nb),
		rch:  make([]float64, nb),
		qvc:  make([]float64, nb),
		wbal: make([]float64, nb),
	}
	return m, nil
}

// SubsurfaceMax returns qo, the subsurface flow rate at full saturation.
func (m *Model) SubsurfaceMax() float64 { return m.qomax }

// RootZoneMax returns the root zone storage capacity [mm].
func (m *Model) RootZoneMax() float64 { return m.srmax }

// step advances the state one timestep. pa is effective precipitation minus
// PET, praw the raw liquid input for the step (the impervious share bypasses
// all storage). Bins are updated independently, then reduced in bin order.
func (m *Model) step(s *State, pa, praw float64) (Flux, error) {
	pe, pr := 0., 0.
	if pa < 0. {
		pe = -pa
	} else {
		pr = pa
	}
	for j := 0; j < m.nb; j++ {
		m.binUpdate(s, j, pe, pr)
	}
	return m.reduce(s, praw)
}

// binUpdate advances one bin: local deficit, unsaturated-to-root transfer,
// recharge with macropore bypass, vertical drainage, and evaporative
// drawdown. Writes only to the bin's own state and scratch slots, so bins
// may run concurrently.
func (m *Model) binUpdate(s *State, j int, pe, pr float64) {
	in0 := s.Srz[j] + s.Suz[j]

	d := s.Dm + m.par.M*(m.twiMean-m.vals[j])
	if d < 0. { // saturated: water table at the land surface
		d = 0.
	}

	ex := 0.
	if s.Suz[j] > d {
		s.Srz[j] += s.Suz[j] - d
		s.Suz[j] = d
		if s.Srz[j] > m.srmax {
			ex = s.Srz[j] - m.srmax
			s.Srz[j] = m.srmax
		}
	}

	if pr > 0. {
		px := pr - (d - s.Suz[j]) - (m.srmax - s.Srz[j])
		if px < 0. {
			px = 0.
		} else {
			ex += px
		}
		if math.Abs(px-pr) > 1e-20 {
			s.Srz[j] += (1. - m.par.MacroporeFrac) * (pr - px)
			s.Suz[j] += m.par.MacroporeFrac * (pr - px)
			if s.Srz[j] > m.srmax {
				s.Suz[j] += s.Srz[j] - m.srmax
				s.Srz[j] = m.srmax
			} else if s.Suz[j] > d {
				s.Srz[j] += s.Suz[j] - d
				s.Suz[j] = d
			}
		}
	}

	qv, rch, qvc := 0., 0., 0.
	if d > 0. {
		qv = m.qv0 * s.Suz[j] / d // Wolock eq 23
		if qv > s.Suz[j] {
			qv = s.Suz[j]
		}
		s.Suz[j] -= qv
		rch = qv
		if rch > d { // the water table accepts no more than the local deficit
			qvc = rch - d // surplus emerges as return flow to the channel
			rch = d
		}
	}

	ev := 0.
	if pe > 0. {
		ev = pe
		if ev > s.Srz[j] {
			ev = s.Srz[j]
		}
		s.Srz[j] -= ev
	}

	s.Dloc[j] = d
	m.scr.ex[j] = ex
	m.scr.qv[j] = qv
	m.scr.rch[j] = rch
	m.scr.qvc[j] = qvc
	m.scr.wbal[j] = in0 + pr - ev - (s.Srz[j] + s.Suz[j]) - qv - ex
}

// reduce aggregates the per-bin scratch: basin-average recharge, exponential
// baseflow recession, deficit update, impervious and total flow. Runs after
// all bins complete; summation is in bin order so serial and concurrent
// evaluation agree bitwise.
func (m *Model) reduce(s *State, praw float64) (Flux, error) {
	var f Flux
	rch := 0.
	for j := 0; j < m.nb; j++ {
		if math.Abs(m.scr.wbal[j]) > nearzero {
			return f, errors.Invariant(s.Step, fmt.Sprintf("bin %d water balance", j), m.scr.wbal[j])
		}
		if s.Srz[j] < 0. || s.Suz[j] < 0. {
			return f, errors.Invariant(s.Step, fmt.Sprintf("bin %d storage", j), math.Min(s.Srz[j], s.Suz[j]))
		}
		a := m.fracs[j]
		f.Qv += m.scr.qv[j] * a
		f.QvChan += m.scr.qvc[j] * a
		rch += m.scr.rch[j] * a
		if m.scr.ex[j] > 0. {
			f.Qof += m.scr.ex[j] * a
		}
	}

	// subsurface flow from the prior deficit (Wolock eq 30)
	if ratio := s.Dm / m.par.M; ratio <= recessionCap {
		f.Qb = m.qomax * math.Exp(-ratio)
	}

	s.Dm += f.Qb - rch
	if s.Dm < 0. {
		s.Dm = 0.
	}
	if math.IsNaN(s.Dm) || math.IsInf(s.Dm, 0) {
		return f, errors.Invariant(s.Step, "saturation_deficit_avg", s.Dm)
	}

	f.Qimp = m.par.ImperviousFrac * praw // Wolock eq 37
	f.Qt = (f.Qof+f.Qb+f.QvChan)*(1.-m.par.ImperviousFrac) + f.Qimp
	if f.Qt < 0. {
		f.Qt = 0.
	}
	f.Dm = s.Dm
	s.Step++
	return f, nil
}
