package report

import(
	"fmt"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/fleet"
	"github.com/gijsvdklink/Airline-planning/geodesic"
	"github.com/gijsvdklink/Airline-planning/gravity"
)

// Inputs is everything a planning run has computed so far. Reports read from it,
// and complain if the part they need is missing.
type Inputs struct {
	Airports      ap.AirportSet
	Distances    *geodesic.DistanceMatrix

	BaseYear      int
	Demand        ap.DemandMatrix     // observed, in BaseYear
	Regression   *gravity.Regression

	ForecastYear  int
	Forecast      ap.DemandMatrix

	Network       fleet.Network
	Legs        []fleet.Leg
}

func (in *Inputs)Check(name string) error {
	if in == nil || in.Distances == nil {
		return fmt.Errorf("report '%s': no distance matrix", name)
	}
	return nil
}

func missing(name, what string) error {
	return fmt.Errorf("report '%s': inputs have no %s", name, what)
}
