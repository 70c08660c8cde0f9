// Package fleet derives per-leg operating data for a hub-and-spoke network: which
// aircraft can fly which legs, how long each flight takes, and what it costs and
// earns. This is the input a fleet/frequency optimisation model is built from.
package fleet

import "fmt"

// An AircraftType describes one leasable aircraft type.
type AircraftType struct {
	Name            string
	Seats           int
	SpeedKMH        float64
	RangeKM         float64
	TATMinutes      float64  // average turnaround time
	WeeklyLeaseCost float64  // EUR/week
	FixedCost       float64  // EUR per flight leg
	TimeCostParam   float64  // EUR per block hour
	FuelCostParam   float64  // scaled by fuel price; see CostPerFlight
}

func (a AircraftType)String() string {
	return fmt.Sprintf("%s: %d seats, %.0fkm/h, range %.0fkm, TAT %.0fmin", a.Name, a.Seats,
		a.SpeedKMH, a.RangeKM, a.TATMinutes)
}

func (a AircraftType)CanFly(distanceKM float64) bool { return distanceKM <= a.RangeKM }

// CostPerFlight is the operating cost of one leg: fixed + time + fuel, where the
// time cost scales with flight hours and the fuel cost with distance and fuel
// price (USD/gallon).
func (a AircraftType)CostPerFlight(distanceKM, fuelPrice float64) float64 {
	fixed := a.FixedCost
	time := a.TimeCostParam * distanceKM / a.SpeedKMH
	fuel := a.FuelCostParam * fuelPrice / 1.5 * distanceKM
	return fixed + time + fuel
}

// DefaultFleet is the set of aircraft types available for lease.
var DefaultFleet = []AircraftType{
	{Name:"Aircraft 1", Seats:45,  SpeedKMH:550, RangeKM:1500,  TATMinutes:25,
		WeeklyLeaseCost:15000,  FixedCost:300,  TimeCostParam:750,  FuelCostParam:1.0},
	{Name:"Aircraft 2", Seats:70,  SpeedKMH:820, RangeKM:3300,  TATMinutes:35,
		WeeklyLeaseCost:34000,  FixedCost:600,  TimeCostParam:775,  FuelCostParam:2.0},
	{Name:"Aircraft 3", Seats:150, SpeedKMH:850, RangeKM:6300,  TATMinutes:45,
		WeeklyLeaseCost:80000,  FixedCost:1250, TimeCostParam:1400, FuelCostParam:3.75},
	{Name:"Aircraft 4", Seats:320, SpeedKMH:870, RangeKM:12000, TATMinutes:60,
		WeeklyLeaseCost:190000, FixedCost:2000, TimeCostParam:2800, FuelCostParam:9.0},
}

func LookupAircraft(fleet []AircraftType, name string) (AircraftType, bool) {
	for _,a := range fleet {
		if a.Name == name { return a, true }
	}
	return AircraftType{}, false
}
