package topmodel

import (
	"fmt"
	"strings"

	"github.com/maseology/mmio"
	"github.com/maseology/topmodel/errors"
	"github.com/maseology/topmodel/forcing"
	"github.com/maseology/topmodel/pet"
	"github.com/maseology/topmodel/report"
	"github.com/maseology/topmodel/route"
	"github.com/maseology/topmodel/snow"
	"github.com/maseology/topmodel/twi"
)

// Domain bundles a fully validated model run: parameters, TWI distribution,
// forcing, optional snowpack, and the channel time-delay histogram. All
// validation happens at load, before any timestep runs.
type Domain struct {
	Par  Params
	Dist *twi.Distribution
	Frc  *forcing.Forcing
	Pack *snow.Pack // nil when the snow routine is disabled
	Tdh  *route.TDH

	OutDir       string
	SaveMatrices bool
	Verbose      bool
}

// LoadDomain reads a control file of keyword-value instructions:
//
//	parfp  <parameters csv>
//	twifp  <twi distribution csv>
//	frcfp  <timeseries csv>
//	outdir <output directory>
//	snow      off|on
//	snowregime heavily_forested|partly_forested
//	tdh       uniform|triangular
//	matrices  true|false
func LoadDomain(controlFP string) (*Domain, error) {
	ins := mmio.NewInstruct(controlFP)
	get := func(key string) (string, bool) {
		if v, ok := ins.Param[key]; ok && len(v) > 0 {
			return v[0], true
		}
		return "", false
	}
	reqfp := func(key string) (string, error) {
		fp, ok := get(key)
		if !ok {
			return "", errors.Validationf("control file: missing %s", key)
		}
		if _, ok := mmio.FileExists(fp); !ok {
			return "", errors.Validationf("control file: %s not found: %s", key, fp)
		}
		return fp, nil
	}

	parfp, err := reqfp("parfp")
	if err != nil {
		return nil, err
	}
	twifp, err := reqfp("twifp")
	if err != nil {
		return nil, err
	}
	frcfp, err := reqfp("frcfp")
	if err != nil {
		return nil, err
	}

	frc, err := forcing.LoadCSV(frcfp)
	if err != nil {
		return nil, err
	}
	dist, err := twi.LoadCSV(twifp)
	if err != nil {
		return nil, err
	}
	pv, err := loadParamsCSV(parfp)
	if err != nil {
		return nil, err
	}
	par, err := buildParams(pv, frc.TimestepFraction())
	if err != nil {
		return nil, err
	}

	d := &Domain{Par: par, Dist: dist, Frc: frc}
	if od, ok := get("outdir"); ok {
		d.OutDir = od
	}
	if v, ok := get("matrices"); ok {
		d.SaveMatrices = v == "true" || v == "1"
	}

	if v, ok := get("snow"); ok && strings.ToLower(v) == "on" {
		sc := buildSnowCoeffs(pv)
		var wet snow.Melter
		regime, _ := get("snowregime")
		switch strings.ToLower(regime) {
		case "", "heavily_forested":
			wet = snow.RainOnSnowHeavilyForested{RainCoeff: sc.rainCoeff}
		case "partly_forested":
			wet = snow.RainOnSnowOpenPartlyForested{
				RainCoeff: sc.rainCoeff,
				WindCoeff: optval(pv, "basin_wind_coeff", 0.5),
				Wind:      optval(pv, "wind_speed", 0.),
			}
		default:
			return nil, errors.Validationf("control file: unknown snowregime %q", regime)
		}
		dry := snow.TemperatureIndex{MeltCoeff: sc.meltCoeff}
		if d.Pack, err = snow.NewPack(sc.cutoffF, par.TimestepFraction, wet, dry); err != nil {
			return nil, err
		}
	}

	var disc route.Discretizer = route.Uniform{}
	if v, ok := get("tdh"); ok {
		switch strings.ToLower(v) {
		case "uniform":
		case "triangular":
			disc = route.Triangular{}
		default:
			return nil, errors.Validationf("control file: unknown tdh scheme %q", v)
		}
	}
	clen := par.ChannelLengthMax
	if clen <= 0. {
		clen = route.ChannelLengthFromArea(par.AreaTotal)
	}
	if d.Tdh, err = route.New(clen, par.ChannelVelocityAvg, disc); err != nil {
		return nil, err
	}

	return d, nil
}

// Run executes the full simulation: snowmelt adjustment, PET, the soil
// moisture engine, channel routing, and report output when an output
// directory is configured. Returns the routed streamflow series.
func (d *Domain) Run() ([]float64, error) {
	frc, dtf := d.Frc, d.Par.TimestepFraction
	if err := frc.Check(); err != nil {
		return nil, err
	}

	// potential evapotranspiration, from the forcing file when supplied
	ep := make([]float64, frc.Nt())
	if frc.PET != nil {
		for i, v := range frc.PET {
			ep[i] = v * dtf
		}
	} else {
		eph, err := pet.Hamon(frc.T, frc.TempC, d.Par.Latitude)
		if err != nil {
			return nil, err
		}
		for i, v := range eph {
			ep[i] = v * dtf
		}
	}

	// effective liquid input, through the snow routine when enabled
	praw := make([]float64, frc.Nt())
	if d.Pack != nil {
		for i := range frc.P {
			tf := frc.TempC[i]*9./5. + 32.
			v, err := d.Pack.Update(frc.P[i], tf)
			if err != nil {
				return nil, err
			}
			praw[i] = v
		}
	} else {
		copy(praw, frc.P)
	}

	pa := make([]float64, frc.Nt())
	for i := range praw {
		pa[i] = praw[i] - ep[i]
	}

	m, err := New(d.Par, d.Dist)
	if err != nil {
		return nil, err
	}
	res, err := m.Evaluate(m.NewState(), pa, praw, d.SaveMatrices, d.Verbose)
	if err != nil {
		return nil, err
	}

	qstream := d.Tdh.Route(res.Qt)

	if d.OutDir != "" {
		out := report.Output{
			Dir:    d.OutDir,
			TS:     frc.T,
			Obs:    frc.Qobs,
			Stream: qstream,
			Qof:    res.Qof, Qb: res.Qb, Qv: res.Qv, QvChan: res.QvChan,
			Qimp: res.Qimp, Qt: res.Qt, Dm: res.Dm,
			SrzM: res.SrzM, SuzM: res.SuzM, DlocM: res.DlocM,
			Params: paramTable(d.Par),
		}
		if err := out.Write(); err != nil {
			return nil, fmt.Errorf("domain.Run: report: %w", err)
		}
	}
	return qstream, nil
}

func paramTable(p Params) []report.NamedParam {
	return []report.NamedParam{
		{Name: "scaling_parameter", Value: p.M, Units: "mm"},
		{Name: "saturated_hydraulic_conductivity", Value: p.Ksat, Units: "mm/day"},
		{Name: "macropore_fraction", Value: p.MacroporeFrac, Units: "fraction"},
		{Name: "soil_depth_total", Value: p.SoilDepthTotal, Units: "m"},
		{Name: "soil_depth_ab_horizon", Value: p.SoilDepthAB, Units: "m"},
		{Name: "soil_depth_roots", Value: p.SoilDepthRoots, Units: "m"},
		{Name: "field_capacity_fraction", Value: p.FieldCapacityFrac, Units: "fraction"},
		{Name: "latitude", Value: p.Latitude, Units: "degrees"},
		{Name: "basin_area_total", Value: p.AreaTotal, Units: "m²"},
		{Name: "impervious_area_fraction", Value: p.ImperviousFrac, Units: "fraction"},
		{Name: "flow_initial", Value: p.FlowInitial, Units: "mm/day"},
		{Name: "timestep_daily_fraction", Value: p.TimestepFraction, Units: "fraction"},
	}
}
