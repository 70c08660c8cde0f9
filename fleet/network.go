package fleet

import(
	"fmt"
	"math"

	"github.com/pkg/errors"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/geodesic"
)

// Yield is the average fare per revenue passenger-kilometre (EUR) for a leg of
// the given length.
func Yield(distanceKM float64) float64 {
	return 5.9 * math.Pow(distanceKM, -0.76) + 0.043
}

// A Network is a hub-and-spoke operation: every flight leg starts or ends at the hub.
type Network struct {
	Hub          string
	LoadFactor   float64 // average fraction of seats sold
	FuelPrice    float64 // USD/gallon
	HoursPerDay  float64 // operating hours per aircraft per day
	DaysPerWeek  float64
	HubTATFactor float64 // turnarounds at the hub take this much longer
}

func DefaultNetwork(hub string) Network {
	return Network{
		Hub: hub,
		LoadFactor: 0.75,
		FuelPrice: ap.DefaultFuelPrice,
		HoursPerDay: 10,
		DaysPerWeek: 7,
		HubTATFactor: 1.5,
	}
}

func (n Network)String() string {
	return fmt.Sprintf("hub %s, LF %.2f, fuel %.2f, %.0fh x %.0fd", n.Hub, n.LoadFactor, n.FuelPrice,
		n.HoursPerDay, n.DaysPerWeek)
}

func (n Network)Validate(dm *geodesic.DistanceMatrix) error {
	switch {
	case !dm.Has(n.Hub):
		return errors.Errorf("network: hub %q not in distance matrix", n.Hub)
	case n.LoadFactor <= 0 || n.LoadFactor > 1:
		return errors.Errorf("network: load factor %f not in (0,1]", n.LoadFactor)
	case n.FuelPrice <= 0:
		return errors.Errorf("network: fuel price %f must be > 0", n.FuelPrice)
	case n.HoursPerDay <= 0 || n.HoursPerDay > 24 || n.DaysPerWeek <= 0 || n.DaysPerWeek > 7:
		return errors.Errorf("network: bad utilisation %fh x %fd", n.HoursPerDay, n.DaysPerWeek)
	case n.HubTATFactor < 1:
		return errors.Errorf("network: hub TAT factor %f must be >= 1", n.HubTATFactor)
	}
	return nil
}

// WeeklyBlockHours is the time each aircraft is available to fly per week.
func (n Network)WeeklyBlockHours() float64 { return n.HoursPerDay * n.DaysPerWeek }

func (n Network)IsHubRoute(r ap.Route) bool { return !r.IsSelf() && r.Involves(n.Hub) }

// HubRoutes lists the routes that can be flown directly: hub to every spoke,
// and back.
func (n Network)HubRoutes(dm *geodesic.DistanceMatrix) []ap.Route {
	out := []ap.Route{}
	for _,c := range dm.Codes() {
		if c == n.Hub { continue }
		out = append(out, ap.NewRoute(n.Hub,c), ap.NewRoute(c,n.Hub))
	}
	return out
}

// BlockHours is the time one flight on the leg takes out of the aircraft's week,
// including the turnaround at the destination.
func (n Network)BlockHours(a AircraftType, r ap.Route, distanceKM float64) float64 {
	tat := a.TATMinutes
	if r.Destination == n.Hub { tat *= n.HubTATFactor }
	return distanceKM/a.SpeedKMH + tat/60.0
}

// {{{ n.RevenuePerPassenger

// RevenuePerPassenger is the fare for one passenger on the route. Routes between
// two spokes are flown via the hub, and earn the fares of both legs.
func (n Network)RevenuePerPassenger(dm *geodesic.DistanceMatrix, r ap.Route) (float64, error) {
	if r.IsSelf() { return 0, errors.Errorf("revenue: %s is a self-route", r) }

	legs := []ap.Route{r}
	if !n.IsHubRoute(r) {
		legs = []ap.Route{ap.NewRoute(r.Origin, n.Hub), ap.NewRoute(n.Hub, r.Destination)}
	}

	total := 0.0
	for _,leg := range legs {
		d,exists := dm.RouteDistance(leg)
		if !exists { return 0, errors.Errorf("revenue: %s not in distance matrix", leg) }
		total += Yield(d) * d
	}
	return total, nil
}

// }}}

// A Leg is one (hub route, aircraft type) combination.
type Leg struct {
	ap.Route                   // embedded
	Aircraft          string
	DistanceKM        float64
	Feasible          bool     // within range
	BlockHours        float64
	MaxWeeklyFlights  int      // per aircraft, if it flew nothing else
	SeatsAtLoadFactor float64
	CostPerFlight     float64
	RevenuePerFlight  float64  // at load factor
}

func (l Leg)ProfitPerFlight() float64 { return l.RevenuePerFlight - l.CostPerFlight }

func (l Leg)String() string {
	return fmt.Sprintf("%-11s %-10s %7.0fkm feasible=%-5v %5.2fh cost=%8.0f rev=%8.0f", l.Route,
		l.Aircraft, l.DistanceKM, l.Feasible, l.BlockHours, l.CostPerFlight, l.RevenuePerFlight)
}

// {{{ n.Legs

// Legs computes leg data for every hub route and aircraft type, in route order
// then fleet order. Legs beyond an aircraft's range are included, marked
// infeasible.
func (n Network)Legs(dm *geodesic.DistanceMatrix, fleet []AircraftType) ([]Leg, error) {
	if err := n.Validate(dm); err != nil { return nil, err }
	if len(fleet) == 0 { return nil, errors.New("legs: empty fleet") }

	legs := []Leg{}
	for _,r := range n.HubRoutes(dm) {
		d,_ := dm.RouteDistance(r)
		for _,a := range fleet {
			if a.SpeedKMH <= 0 || a.Seats <= 0 {
				return nil, errors.Errorf("legs: aircraft %q has no speed or seats", a.Name)
			}
			seats := float64(a.Seats) * n.LoadFactor
			bh := n.BlockHours(a, r, d)

			leg := Leg{
				Route: r,
				Aircraft: a.Name,
				DistanceKM: d,
				Feasible: a.CanFly(d),
				BlockHours: bh,
				MaxWeeklyFlights: int(math.Floor(n.WeeklyBlockHours() / bh)),
				SeatsAtLoadFactor: seats,
				CostPerFlight: a.CostPerFlight(d, n.FuelPrice),
				RevenuePerFlight: Yield(d) * d * seats,
			}
			legs = append(legs, leg)
		}
	}

	return legs, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
