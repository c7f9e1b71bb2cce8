// Package route transforms instantaneous generated flow into a channel-routed
// streamflow series by convolving with a time-delay histogram: one weight per
// timestep of delay, weights summing to 1. Routing is causal, so a series can
// be routed in a second pass or one step at a time with a bounded look-back.
package route

import (
	"math"

	"github.com/maseology/topmodel/errors"
)

const wttol = 1e-6

// Discretizer converts a scalar channel travel time (timesteps) into delay
// weights. The binning scheme is a configurable strategy; see Uniform and
// Triangular.
type Discretizer interface {
	Weights(travelTime float64) []float64
}

// Uniform spreads the travel-time mass evenly from 0 to travelTime.
type Uniform struct{}

func (Uniform) Weights(tt float64) []float64 {
	n := int(math.Ceil(tt))
	w := make([]float64, n)
	for k := 0; k < n; k++ {
		w[k] = (math.Min(float64(k+1), tt) - float64(k)) / tt
	}
	return w
}

// Triangular applies a symmetric time-area curve peaking at travelTime/2.
type Triangular struct{}

func (Triangular) Weights(tt float64) []float64 {
	cdf := func(x float64) float64 {
		switch {
		case x <= 0.:
			return 0.
		case x >= tt:
			return 1.
		case x <= tt/2.:
			return 2. * x * x / (tt * tt)
		default:
			return 1. - 2.*(tt-x)*(tt-x)/(tt*tt)
		}
	}
	n := int(math.Ceil(tt))
	w := make([]float64, n)
	for k := 0; k < n; k++ {
		w[k] = cdf(float64(k+1)) - cdf(float64(k))
	}
	return w
}

// TDH is a time-delay histogram, computed once and immutable for the run.
type TDH struct {
	w []float64
}

// New builds the histogram from the maximum channel length and average
// channel velocity, expressed so that length/velocity is the travel time in
// timesteps. Travel time is floored at one timestep (after Wolock, 1993,
// eq 38) so no water is routed before the end of the step it was generated in.
func New(channelLengthMax, channelVelocityAvg float64, d Discretizer) (*TDH, error) {
	if channelLengthMax <= 0. {
		return nil, errors.Configurationf("channel_length_max", channelLengthMax, "must be positive")
	}
	if channelVelocityAvg <= 0. {
		return nil, errors.Configurationf("channel_velocity_avg", channelVelocityAvg, "must be positive")
	}
	if d == nil {
		d = Uniform{}
	}
	tt := math.Max(channelLengthMax/channelVelocityAvg, 1.)
	return NewFromWeights(d.Weights(tt))
}

// ChannelLengthFromArea approximates the maximum channel length as twice the
// radius of a circle of the basin's area.
func ChannelLengthFromArea(basinArea float64) float64 {
	return 2. * math.Sqrt(basinArea/math.Pi)
}

// NewFromWeights accepts a supplied travel-distance distribution,
// renormalizing it to sum to 1.
func NewFromWeights(w []float64) (*TDH, error) {
	if len(w) == 0 {
		return nil, errors.Validationf("route: empty weight vector")
	}
	s := 0.
	for k, v := range w {
		if v < 0. || math.IsNaN(v) {
			return nil, errors.Validationf("route: weight %d = %v", k, v)
		}
		s += v
	}
	if s <= 0. {
		return nil, errors.Validationf("route: weights sum to %v, cannot normalize", s)
	}
	t := &TDH{w: make([]float64, len(w))}
	for k, v := range w {
		t.w[k] = v / s
	}
	return t, nil
}

// Horizon returns the travel-time horizon in timesteps.
func (t *TDH) Horizon() int { return len(t.w) }

// Weight returns the delay weight at lag k.
func (t *TDH) Weight(k int) float64 { return t.w[k] }

// Route convolves a generated-flow series into the channel-routed series:
//
//	q[t] = sum_{k=0}^{min(t,N-1)} w[k] * qt[t-k]
//
// No future input is ever read.
func (t *TDH) Route(qt []float64) []float64 {
	q := make([]float64, len(qt))
	for j := range qt {
		for k, w := range t.w {
			if k > j {
				break
			}
			q[j] += w * qt[j-k]
		}
	}
	return q
}

// Stepper returns an incremental router holding a look-back window equal to
// the travel-time horizon. A fresh Stepper agrees exactly with Route.
func (t *TDH) Stepper() *Stepper {
	return &Stepper{w: t.w, buf: make([]float64, len(t.w))}
}

// Stepper routes one step at a time.
type Stepper struct {
	w, buf []float64
	i      int
}

// Step takes the current step's generated flow and returns the routed flow
// for this step.
func (s *Stepper) Step(qt float64) float64 {
	n := len(s.w)
	s.buf[s.i] = qt
	q := 0.
	for k, w := range s.w {
		q += w * s.buf[(s.i-k+n)%n]
	}
	s.i = (s.i + 1) % n
	return q
}
