package topmodel

import (
	"github.com/maseology/topmodel/errors"
)

// Params are the basin/soil constants of a run, immutable once checked.
// Depths of soil horizons are in metres, storages and flows in millimetres
// per timestep, the scaling parameter M in millimetres.
type Params struct {
	M                  float64 // scaling parameter (exponential transmissivity decay) [mm]
	Ksat               float64 // saturated hydraulic conductivity [mm/day]
	MacroporeFrac      float64 // fraction of recharge bypassing the root zone
	SoilDepthTotal     float64 // [m]
	SoilDepthAB        float64 // depth of the AB horizon [m]
	SoilDepthRoots     float64 // [m]
	FieldCapacityFrac  float64
	Latitude           float64 // [decimal degrees]
	AreaTotal          float64 // basin area [m²]
	ImperviousFrac     float64
	ChannelLengthMax   float64 // [m]; 0 to approximate from basin area
	ChannelVelocityAvg float64 // per-timestep travel-distance scale
	FlowInitial        float64 // antecedent streamflow [mm/day]
	TimestepFraction   float64 // timestep as a fraction of one day
}

func (p *Params) check() error {
	if p.M <= 0. {
		return errors.Configurationf("scaling_parameter", p.M, "must be positive")
	}
	if p.Ksat <= 0. {
		return errors.Configurationf("saturated_hydraulic_conductivity", p.Ksat, "must be positive")
	}
	if p.MacroporeFrac < 0. || p.MacroporeFrac >= 1. {
		return errors.Configurationf("macropore_fraction", p.MacroporeFrac, "must be within [0,1)")
	}
	if p.SoilDepthTotal <= 0. {
		return errors.Configurationf("soil_depth_total", p.SoilDepthTotal, "must be positive")
	}
	if p.SoilDepthAB <= 0. || p.SoilDepthAB >= p.SoilDepthTotal {
		return errors.Configurationf("soil_depth_ab_horizon", p.SoilDepthAB, "must be within (0, soil_depth_total)")
	}
	if p.SoilDepthRoots <= 0. {
		return errors.Configurationf("soil_depth_roots", p.SoilDepthRoots, "must be positive")
	}
	if p.FieldCapacityFrac <= 0. || p.FieldCapacityFrac >= 1. {
		return errors.Configurationf("field_capacity_fraction", p.FieldCapacityFrac, "must be within (0,1)")
	}
	if p.Latitude < 0. || p.Latitude > 90. {
		return errors.Configurationf("latitude", p.Latitude, "must be within [0,90]")
	}
	if p.AreaTotal <= 0. {
		return errors.Configurationf("basin_area_total", p.AreaTotal, "must be positive")
	}
	if p.ImperviousFrac < 0. || p.ImperviousFrac >= 1. {
		return errors.Configurationf("impervious_area_fraction", p.ImperviousFrac, "must be within [0,1)")
	}
	if p.FlowInitial <= 0. {
		return errors.Configurationf("flow_initial", p.FlowInitial, "must be positive")
	}
	if p.TimestepFraction <= 0. || p.TimestepFraction > 1. {
		return errors.Configurationf("timestep_daily_fraction", p.TimestepFraction, "must be within (0,1]")
	}
	return nil
}
