package topmodel

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/topmodel/errors"
)

// Results are the per-timestep aggregate flow series of a run, immutable
// once produced. The per-bin matrices are populated only when requested.
type Results struct {
	Qof, Qb, Qv, QvChan, Qimp, Qt, Dm []float64
	SrzM, SuzM, DlocM                 [][]float64 // [timestep][bin]
}

// Evaluate runs the model serially over the forcing series. pa is effective
// precipitation minus PET per timestep, praw the raw liquid input (for the
// impervious share). saveMatrices requests per-bin diagnostic export;
// verbose draws a progress bar.
func (m *Model) Evaluate(s *State, pa, praw []float64, saveMatrices, verbose bool) (*Results, error) {
	if err := checkSeries(pa, praw); err != nil {
		return nil, err
	}

	var bar *uiprogress.Bar
	if verbose {
		uiprogress.Start()
		bar = uiprogress.AddBar(len(pa)).AppendCompleted().PrependElapsed()
		defer uiprogress.Stop()
	}

	r := newResults(len(pa), m.nb, saveMatrices)
	for j := range pa {
		f, err := m.step(s, pa[j], praw[j])
		if err != nil {
			return nil, err
		}
		r.collect(j, f, s)
		if bar != nil {
			bar.Incr()
		}
	}
	return r, nil
}

func checkSeries(pa, praw []float64) error {
	if len(pa) == 0 {
		return errors.Validationf("evaluate: empty forcing series")
	}
	if len(pa) != len(praw) {
		return errors.Validationf("evaluate: series lengths differ: %d net input, %d raw input", len(pa), len(praw))
	}
	return nil
}

func newResults(nt, nb int, saveMatrices bool) *Results {
	r := &Results{
		Qof:    make([]float64, nt),
		Qb:     make([]float64, nt),
		Qv:     make([]float64, nt),
		QvChan: make([]float64, nt),
		Qimp:   make([]float64, nt),
		Qt:     make([]float64, nt),
		Dm:     make([]float64, nt),
	}
	if saveMatrices {
		r.SrzM = make([][]float64, nt)
		r.SuzM = make([][]float64, nt)
		r.DlocM = make([][]float64, nt)
	}
	return r
}

func (r *Results) collect(j int, f Flux, s *State) {
	r.Qof[j] = f.Qof
	r.Qb[j] = f.Qb
	r.Qv[j] = f.Qv
	r.QvChan[j] = f.QvChan
	r.Qimp[j] = f.Qimp
	r.Qt[j] = f.Qt
	r.Dm[j] = f.Dm
	if r.SrzM != nil {
		r.SrzM[j] = append([]float64(nil), s.Srz...)
		r.SuzM[j] = append([]float64(nil), s.Suz...)
		r.DlocM[j] = append([]float64(nil), s.Dloc...)
	}
}

// Bin returns the per-bin diagnostic series for bin i, or an error when
// matrices were not requested.
func (r *Results) Bin(i int) (srz, suz, dloc []float64, err error) {
	if r.SrzM == nil {
		return nil, nil, nil, fmt.Errorf("results: per-bin matrices were not requested")
	}
	srz = make([]float64, len(r.SrzM))
	suz = make([]float64, len(r.SrzM))
	dloc = make([]float64, len(r.SrzM))
	for j := range r.SrzM {
		srz[j] = r.SrzM[j][i]
		suz[j] = r.SuzM[j][i]
		dloc[j] = r.DlocM[j][i]
	}
	return
}
