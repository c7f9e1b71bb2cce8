package report

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutput(dir string, nt int) *Output {
	o := &Output{
		Dir:    dir,
		TS:     make([]time.Time, nt),
		Stream: make([]float64, nt),
		Qof:    make([]float64, nt),
		Qb:     make([]float64, nt),
		Qv:     make([]float64, nt),
		QvChan: make([]float64, nt),
		Qimp:   make([]float64, nt),
		Qt:     make([]float64, nt),
		Dm:     make([]float64, nt),
	}
	t0 := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < nt; i++ {
		o.TS[i] = t0.AddDate(0, 0, i)
		o.Stream[i] = 1. + math.Sin(float64(i)/4.)
		o.Qb[i] = 0.8 * o.Stream[i]
		o.Qt[i] = o.Stream[i]
	}
	return o
}

func TestWriteWithoutObservations(t *testing.T) {
	o := testOutput(filepath.Join(t.TempDir(), "out"), 12)
	o.Params = []NamedParam{{Name: "scaling_parameter", Value: 10., Units: "mm"}}
	require.NoError(t, o.Write())

	for _, n := range []string{"hdgrph.csv", "components.csv", "summary.html"} {
		_, err := os.Stat(filepath.Join(o.Dir, n))
		assert.NoError(t, err, n)
	}
	b, err := os.ReadFile(filepath.Join(o.Dir, "summary.html"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "scaling_parameter")
}

func TestStatsPerfectFit(t *testing.T) {
	o := testOutput(t.TempDir(), 30)
	o.Obs = append([]float64(nil), o.Stream...)
	f := o.Stats()
	assert.InDelta(t, 1., f.KGE, 1e-9)
	assert.InDelta(t, 1., f.NSE, 1e-9)
	assert.InDelta(t, 0., f.RMSE, 1e-9)
	assert.False(t, math.IsNaN(f.Bias))
}

func TestWriteMatrices(t *testing.T) {
	o := testOutput(filepath.Join(t.TempDir(), "out"), 6)
	o.SrzM = make([][]float64, 6)
	o.SuzM = make([][]float64, 6)
	o.DlocM = make([][]float64, 6)
	for j := range o.SrzM {
		o.SrzM[j] = []float64{1., 2., 3.}
		o.SuzM[j] = []float64{0., 0.5, 1.}
		o.DlocM[j] = []float64{9., 5., 0.}
	}
	require.NoError(t, o.Write())
	for _, n := range []string{"srz.csv", "suz.csv", "dloc.csv"} {
		_, err := os.Stat(filepath.Join(o.Dir, n))
		assert.NoError(t, err, n)
	}
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2., mean([]float64{1., 2., 3.}), 1e-12)
	assert.True(t, math.IsNaN(mean(nil)))
}
