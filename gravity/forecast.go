package gravity

import(
	"fmt"
	"math"

	"github.com/pkg/errors"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/geodesic"
)

// Parameters of a calibrated gravity model. B3 is the distance decay rate: a
// positive B3 means demand falls with distance.
type Parameters struct {
	K   float64 // scale
	B1  float64 // population elasticity
	B2  float64 // GDP elasticity
	B3  float64 // cost (fuel*distance) decay
}

func (p Parameters)String() string {
	return fmt.Sprintf("k=%.6g b1=%.4f b2=%.4f b3=%.4f", p.K, p.B1, p.B2, p.B3)
}

// A Forecaster applies calibrated parameters at a given fuel cost.
type Forecaster struct {
	Parameters         // embedded
	FuelCost   float64
}

func NewForecaster(p Parameters, fuel float64) Forecaster {
	return Forecaster{Parameters:p, FuelCost:fuel}
}

// Forecast returns the predicted weekly demand between two airports.
func (f Forecaster)Forecast(popI, popJ, gdpI, gdpJ, distance float64) float64 {
	return f.K *
		math.Pow(popI*popJ, f.B1) *
		math.Pow(gdpI*gdpJ, f.B2) *
		math.Pow(f.FuelCost*distance, -f.B3)
}

// {{{ ForecastMatrix

// ForecastMatrix predicts demand for every ordered pair of distinct airports,
// with population and GDP projected to the given year, and distances from dm.
func (f Forecaster)ForecastMatrix(airports ap.AirportSet, dm *geodesic.DistanceMatrix, year int) (ap.DemandMatrix, error) {
	out := ap.NewDemandMatrix()

	type econ struct{ pop, gdp float64 }
	vals := map[string]econ{}
	for _,a := range airports.Airports() {
		pop,err := a.PopulationIn(year)
		if err != nil { return nil, errors.Wrapf(err, "forecast %d", year) }
		gdp,err := a.GDPIn(year)
		if err != nil { return nil, errors.Wrapf(err, "forecast %d", year) }
		vals[a.Code] = econ{pop,gdp}
	}

	for _,o := range airports.Codes() {
		for _,d := range airports.Codes() {
			if o == d { continue }
			dist,exists := dm.Distance(o,d)
			if !exists {
				return nil, errors.Errorf("forecast %s-%s: not in distance matrix", o, d)
			} else if dist <= 0 {
				return nil, errors.Errorf("forecast %s-%s: airports are coincident", o, d)
			}
			vo,vd := vals[o], vals[d]
			out.Set(ap.NewRoute(o,d), f.Forecast(vo.pop, vd.pop, vo.gdp, vd.gdp, dist))
		}
	}

	return out, nil
}

// }}}
