package topmodel

import (
	"sync"
)

// EvaluateConcurrent runs the same computation as Evaluate with the per-bin
// updates of each timestep fanned out across goroutines. Timesteps remain
// strictly sequential (each depends on the prior state); within a step the
// bins are independent and the reduction runs after all bins complete, in
// bin order, so results are identical to the serial evaluator.
func (m *Model) EvaluateConcurrent(s *State, pa, praw []float64, saveMatrices bool) (*Results, error) {
	if err := checkSeries(pa, praw); err != nil {
		return nil, err
	}

	r := newResults(len(pa), m.nb, saveMatrices)
	var wg sync.WaitGroup
	for j := range pa {
		pe, pr := 0., 0.
		if pa[j] < 0. {
			pe = -pa[j]
		} else {
			pr = pa[j]
		}

		wg.Add(m.nb)
		for i := 0; i < m.nb; i++ {
			go func(i int) {
				defer wg.Done()
				m.binUpdate(s, i, pe, pr)
			}(i)
		}
		wg.Wait()

		f, err := m.reduce(s, praw[j])
		if err != nil {
			return nil, err
		}
		r.collect(j, f, s)
	}
	return r, nil
}
