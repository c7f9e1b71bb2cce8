package topmodel

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/topmodel/errors"
)

// the parameters file is comma-delimited with one scalar per row:
// name,value,units,description

var paramsHeader = []string{"name", "value", "units", "description"}

func loadParamsCSV(fp string) (map[string]float64, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readParamsCSV(f)
}

func readParamsCSV(r io.Reader) (map[string]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if err != nil {
		return nil, errors.Validationf("parameters: empty file")
	}
	if len(hdr) < len(paramsHeader) {
		return nil, errors.Validationf("parameters: header %v, expected %v", hdr, paramsHeader)
	}
	for i, h := range paramsHeader {
		if strings.ToLower(strings.TrimSpace(hdr[i])) != h {
			return nil, errors.Validationf("parameters: header %v, expected %v", hdr, paramsHeader)
		}
	}

	p := make(map[string]float64)
	ln := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Validationf("parameters: line %d: %v", ln+1, err)
		}
		ln++
		if len(rec) < 2 {
			return nil, errors.Validationf("parameters: line %d: need name and value", ln)
		}
		name := strings.ToLower(strings.TrimSpace(rec[0]))
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, errors.Validationf("parameters: line %d (%s): %v", ln, name, err)
		}
		p[name] = v
	}
	return p, nil
}

// buildParams assembles checked Params from the parameters file values,
// applying the defaults of the original USGS formulation where a row is
// absent: 1 m root depth, 1 mm/day antecedent flow, velocity 10 per
// timestep, channel length approximated from basin area.
func buildParams(pv map[string]float64, dtf float64) (Params, error) {
	req := func(name string) (float64, error) {
		v, ok := pv[name]
		if !ok {
			return 0., errors.Validationf("parameters: missing required row %s", name)
		}
		return v, nil
	}
	var par Params
	var err error
	if par.M, err = req("scaling_parameter"); err != nil {
		return par, err
	}
	if par.Ksat, err = req("saturated_hydraulic_conductivity"); err != nil {
		return par, err
	}
	if par.MacroporeFrac, err = req("macropore_fraction"); err != nil {
		return par, err
	}
	if par.SoilDepthTotal, err = req("soil_depth_total"); err != nil {
		return par, err
	}
	if par.SoilDepthAB, err = req("soil_depth_ab_horizon"); err != nil {
		return par, err
	}
	if par.FieldCapacityFrac, err = req("field_capacity_fraction"); err != nil {
		return par, err
	}
	if par.Latitude, err = req("latitude"); err != nil {
		return par, err
	}
	if par.AreaTotal, err = req("basin_area_total"); err != nil {
		return par, err
	}
	if par.ImperviousFrac, err = req("impervious_area_fraction"); err != nil {
		return par, err
	}
	par.SoilDepthRoots = optval(pv, "soil_depth_roots", 1.)
	par.FlowInitial = optval(pv, "flow_initial", 1.)
	par.ChannelVelocityAvg = optval(pv, "channel_velocity_avg", 10.*dtf)
	par.ChannelLengthMax = optval(pv, "channel_length_max", 0.) // 0: derive from area
	par.TimestepFraction = dtf
	if err := par.check(); err != nil {
		return par, err
	}
	return par, nil
}

func optval(pv map[string]float64, name string, def float64) float64 {
	if v, ok := pv[name]; ok {
		return v
	}
	return def
}

// snowCoeffs are the melt-routine rows of the parameters file.
type snowCoeffs struct {
	cutoffF   float64 // snowmelt_temperature_cutoff [F]
	rainCoeff float64 // snowmelt_rate_coeff_with_rain [1/F]
	meltCoeff float64 // snowmelt_rate_coeff [in/F]
}

func buildSnowCoeffs(pv map[string]float64) snowCoeffs {
	return snowCoeffs{
		cutoffF:   optval(pv, "snowmelt_temperature_cutoff", 32.),
		rainCoeff: optval(pv, "snowmelt_rate_coeff_with_rain", 0.007),
		meltCoeff: optval(pv, "snowmelt_rate_coeff", 0.06),
	}
}
