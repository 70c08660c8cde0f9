// Package gravity calibrates and applies the gravity model of air travel demand:
//
//	D_ij = k * (pop_i*pop_j)^b1 * (gdp_i*gdp_j)^b2 / (fuel*d_ij)^b3
//
// The model is fitted by ordinary least squares on its log-linear form.
package gravity

import(
	"fmt"
	"math"

	"github.com/pkg/errors"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/geodesic"
)

// A DemandObservation is one observed route, with the raw inputs to the model and
// the log-transformed covariates derived from them.
type DemandObservation struct {
	ap.Route                  // embedded; never a self-pair

	Demand         float64    // trips/week
	PopOrigin      float64
	PopDestination float64
	GDPOrigin      float64
	GDPDestination float64
	FuelCost       float64
	Distance       float64    // KM, from the run's DistanceMatrix

	// Derived, by NewDemandObservation
	LogPopulation  float64    // log(pop_i * pop_j)
	LogGDP         float64    // log(gdp_i * gdp_j)
	LogCost        float64    // log(fuel * d_ij)
	LogDemand      float64
}

func NewDemandObservation(r ap.Route, demand, popO, popD, gdpO, gdpD, fuel, dist float64) (DemandObservation, error) {
	o := DemandObservation{
		Route: r,
		Demand: demand,
		PopOrigin: popO,
		PopDestination: popD,
		GDPOrigin: gdpO,
		GDPDestination: gdpD,
		FuelCost: fuel,
		Distance: dist,
	}
	if err := o.Validate(); err != nil {
		return DemandObservation{}, err
	}
	return o.derive(), nil
}

// Validate returns an *ap.InvalidObservationError if the observation is a
// self-pair, or any of its raw values is not strictly positive.
func (o DemandObservation)Validate() error {
	if o.Route.IsSelf() {
		return &ap.InvalidObservationError{Route:o.Route, Field:"route"}
	}

	checks := []struct{
		field string
		v     float64
	}{
		{"demand", o.Demand},
		{"origin population", o.PopOrigin},
		{"destination population", o.PopDestination},
		{"origin GDP", o.GDPOrigin},
		{"destination GDP", o.GDPDestination},
		{"fuel cost", o.FuelCost},
		{"distance", o.Distance},
	}
	for _,c := range checks {
		// !(v>0) also catches NaN
		if !(c.v > 0) || math.IsInf(c.v, 1) {
			return &ap.InvalidObservationError{Route:o.Route, Field:c.field, Value:c.v}
		}
	}
	return nil
}

func (o DemandObservation)derive() DemandObservation {
	// Sums of logs; the products can overflow for large finite inputs
	o.LogPopulation = math.Log(o.PopOrigin) + math.Log(o.PopDestination)
	o.LogGDP = math.Log(o.GDPOrigin) + math.Log(o.GDPDestination)
	o.LogCost = math.Log(o.FuelCost) + math.Log(o.Distance)
	o.LogDemand = math.Log(o.Demand)
	return o
}

func (o DemandObservation)String() string {
	return fmt.Sprintf("%s demand=%.1f pop=%.0f/%.0f gdp=%.0f/%.0f dist=%.1fKM",
		o.Route, o.Demand, o.PopOrigin, o.PopDestination, o.GDPOrigin, o.GDPDestination, o.Distance)
}

// {{{ BuildObservations

// BuildObservations joins the demand matrix against the airports (population and
// GDP for the given year) and the distance matrix, yielding one observation per
// demand entry, in route order. Every distance comes from dm.
//
// Invalid observations are not dropped: the first one found is returned as an
// *ap.InvalidObservationError, and the caller decides what to do about it.
func BuildObservations(airports ap.AirportSet, demand ap.DemandMatrix, dm *geodesic.DistanceMatrix, year int, fuel float64) ([]DemandObservation, error) {
	obs := []DemandObservation{}

	for _,r := range demand.Routes() {
		orig,exists := airports.Lookup(r.Origin)
		if !exists { return nil, errors.Errorf("demand route %s: origin not in airport list", r) }
		dest,exists := airports.Lookup(r.Destination)
		if !exists { return nil, errors.Errorf("demand route %s: destination not in airport list", r) }

		dist,exists := dm.RouteDistance(r)
		if !exists { return nil, errors.Errorf("demand route %s: not in distance matrix", r) }

		popO,err := orig.PopulationIn(year)
		if err != nil { return nil, errors.Wrapf(err, "route %s", r) }
		popD,err := dest.PopulationIn(year)
		if err != nil { return nil, errors.Wrapf(err, "route %s", r) }
		gdpO,err := orig.GDPIn(year)
		if err != nil { return nil, errors.Wrapf(err, "route %s", r) }
		gdpD,err := dest.GDPIn(year)
		if err != nil { return nil, errors.Wrapf(err, "route %s", r) }

		o,err := NewDemandObservation(r, demand[r], popO, popD, gdpO, gdpD, fuel, dist)
		if err != nil { return nil, err }

		obs = append(obs, o)
	}

	return obs, nil
}

// }}}
