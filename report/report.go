// Package report writes simulation products: hydrograph and flow-component
// csv files, per-bin storage matrices, goodness-of-fit statistics, and an
// html run summary.
package report

import (
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"time"

	mmplt "github.com/maseology/mmPlot"
	"github.com/maseology/mmio"
	"github.com/maseology/objfunc"
)

// NamedParam is one row of the run-summary parameter table.
type NamedParam struct {
	Name  string
	Value float64
	Units string
}

// Fit holds goodness-of-fit statistics against observed streamflow.
type Fit struct {
	KGE, NSE, RMSE, Bias float64
}

// Output collects everything a completed run produces. Obs and the
// per-bin matrices may be nil; the corresponding products are skipped.
type Output struct {
	Dir    string
	TS     []time.Time
	Obs    []float64
	Stream []float64

	Qof, Qb, Qv, QvChan, Qimp, Qt, Dm []float64
	SrzM, SuzM, DlocM                 [][]float64

	Params []NamedParam
}

// Write emits all products to o.Dir, creating the directory as needed.
func (o *Output) Write() error {
	mmio.MakeDir(o.Dir)
	fp := func(n string) string { return filepath.Join(o.Dir, n) }

	if o.Obs != nil {
		mmio.WriteCsvDateFloats(fp("hdgrph.csv"), "date,obs,sim", o.TS, o.Obs, o.Stream)
		mmplt.ObsSim(fp("hyd.png"), o.Obs, o.Stream)
	} else {
		mmio.WriteCsvDateFloats(fp("hdgrph.csv"), "date,sim", o.TS, o.Stream)
	}

	mmio.WriteCsvDateFloats(fp("components.csv"), "date,qof,qb,qv,qvchan,qimp,qt,dm",
		o.TS, o.Qof, o.Qb, o.Qv, o.QvChan, o.Qimp, o.Qt, o.Dm)

	x := make([]float64, len(o.Dm))
	for i := range x {
		x[i] = float64(i)
	}
	mmplt.Line(fp("dm.png"), x, map[string][]float64{"saturation deficit": o.Dm}, 48., 8.)

	if o.SrzM != nil {
		o.writeMatrix(fp("srz.csv"), o.SrzM)
		o.writeMatrix(fp("suz.csv"), o.SuzM)
		o.writeMatrix(fp("dloc.csv"), o.DlocM)
	}

	var ft *Fit
	if o.Obs != nil {
		f := o.Stats()
		ft = &f
		fmt.Printf("  KGE: %.3f  NSE: %.3f  RMSE: %.3f  Bias: %.3f\n", f.KGE, f.NSE, f.RMSE, f.Bias)
	}
	return o.writeSummary(fp("summary.html"), ft)
}

// Stats computes fit statistics of routed streamflow against observations.
func (o *Output) Stats() Fit {
	return Fit{
		KGE:  objfunc.KGE(o.Obs, o.Stream),
		NSE:  objfunc.NSE(o.Obs, o.Stream),
		RMSE: objfunc.RMSE(o.Obs, o.Stream),
		Bias: objfunc.Bias(o.Obs, o.Stream),
	}
}

// writeMatrix exports a [timestep][bin] matrix, one column per bin.
func (o *Output) writeMatrix(fp string, m [][]float64) {
	nb := len(m[0])
	hdr := "date"
	cols := make([][]float64, nb)
	for i := 0; i < nb; i++ {
		hdr += fmt.Sprintf(",bin%03d", i+1)
		cols[i] = make([]float64, len(m))
		for j := range m {
			cols[i][j] = m[j][i]
		}
	}
	mmio.WriteCsvDateFloats(fp, hdr, o.TS, cols...)
}

type summaryData struct {
	Start, End string
	Nt         int
	Params     []NamedParam
	Fit        *Fit
	MeanSim    float64
	MeanObs    float64
	HasObs     bool
}

var summaryTmpl = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html><head><title>topmodel run summary</title>
<style>body{font-family:sans-serif}table{border-collapse:collapse}td,th{border:1px solid #999;padding:4px 10px}</style>
</head><body>
<h1>topmodel run summary</h1>
<p>{{.Nt}} timesteps, {{.Start}} to {{.End}}</p>
{{if .Fit}}<h2>Fit</h2>
<table><tr><th>KGE</th><th>NSE</th><th>RMSE</th><th>Bias</th></tr>
<tr><td>{{printf "%.3f" .Fit.KGE}}</td><td>{{printf "%.3f" .Fit.NSE}}</td><td>{{printf "%.3f" .Fit.RMSE}}</td><td>{{printf "%.3f" .Fit.Bias}}</td></tr></table>
{{end}}<h2>Flow</h2>
<table><tr><th></th><th>mean [mm/ts]</th></tr>
<tr><td>simulated</td><td>{{printf "%.4f" .MeanSim}}</td></tr>
{{if .HasObs}}<tr><td>observed</td><td>{{printf "%.4f" .MeanObs}}</td></tr>{{end}}</table>
<h2>Parameters</h2>
<table><tr><th>name</th><th>value</th><th>units</th></tr>
{{range .Params}}<tr><td>{{.Name}}</td><td>{{printf "%g" .Value}}</td><td>{{.Units}}</td></tr>
{{end}}</table>
</body></html>
`))

func (o *Output) writeSummary(fp string, ft *Fit) error {
	d := summaryData{
		Nt:      len(o.TS),
		Params:  o.Params,
		Fit:     ft,
		MeanSim: mean(o.Stream),
		HasObs:  o.Obs != nil,
	}
	if len(o.TS) > 0 {
		d.Start = o.TS[0].Format("2006-01-02")
		d.End = o.TS[len(o.TS)-1].Format("2006-01-02")
	}
	if o.Obs != nil {
		d.MeanObs = mean(o.Obs)
	}
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" report.writeSummary %v", err)
	}
	defer f.Close()
	return summaryTmpl.Execute(f, d)
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	s := 0.
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
