package gravity

// go test -v github.com/gijsvdklink/Airline-planning/gravity

import(
	"errors"
	"math"
	"testing"

	"github.com/skypies/geo"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/geodesic"
)

type testAirport struct {
	Code     string
	Pos      geo.Latlong
	Pop, GDP float64
}

var testNetwork = []testAirport{
	{"EHAM", geo.Latlong{Lat: 52.3086,  Long: 4.7639}, 2.4e6, 52000},
	{"EDDF", geo.Latlong{Lat: 50.0333,  Long: 8.5706}, 5.6e6, 61000},
	{"LIRF", geo.Latlong{Lat: 41.8003, Long: 12.2389}, 4.3e6, 38000},
	{"LEMD", geo.Latlong{Lat: 40.4719, Long: -3.5626}, 6.6e6, 35000},
	{"EGLL", geo.Latlong{Lat: 51.4706, Long: -0.4619}, 9.0e6, 57000},
	{"LPPT", geo.Latlong{Lat: 38.7813, Long: -9.1359}, 2.9e6, 27000},
}

var kTrueParams = Parameters{K:0.004, B1:0.45, B2:0.3, B3:0.8}

// Population and GDP grow by a fixed 2%/yr from 2020, so 2023 is known too.
func makeAirports(t *testing.T, net []testAirport) ap.AirportSet {
	airports := []ap.Airport{}
	for _,a := range net {
		airports = append(airports, ap.Airport{
			Code: a.Code,
			City: a.Code,
			Latlong: a.Pos,
			PopulationByYear: map[int]float64{2020:a.Pop, 2023:a.Pop*math.Pow(1.02,3)},
			GDPByYear: map[int]float64{2020:a.GDP, 2023:a.GDP*math.Pow(1.02,3)},
		})
	}
	s,err := ap.NewAirportSet(airports...)
	if err != nil { t.Fatalf("NewAirportSet: %v", err) }
	return s
}

// Generate demand that follows the model exactly.
func syntheticWorld(t *testing.T, net []testAirport, p Parameters) (ap.AirportSet, *geodesic.DistanceMatrix, ap.DemandMatrix) {
	airports := makeAirports(t, net)
	dm,err := geodesic.NewDistanceMatrix(airports)
	if err != nil { t.Fatalf("NewDistanceMatrix: %v", err) }

	demand,err := NewForecaster(p, ap.DefaultFuelPrice).ForecastMatrix(airports, dm, 2020)
	if err != nil { t.Fatalf("ForecastMatrix: %v", err) }

	return airports, dm, demand
}

func relErr(got, want float64) float64 { return math.Abs(got-want) / math.Abs(want) }

func TestCalibrationRoundTrip(t *testing.T) {
	airports,dm,demand := syntheticWorld(t, testNetwork, kTrueParams)
	if len(demand) != 30 { t.Fatalf("expected 30 routes, got %d", len(demand)) }

	obs,err := BuildObservations(airports, demand, dm, 2020, ap.DefaultFuelPrice)
	if err != nil { t.Fatalf("BuildObservations: %v", err) }

	events := map[string]int{}
	observer := func(event string, kv ...interface{}) { events[event]++ }

	reg,err := Fit(obs, observer)
	if err != nil { t.Fatalf("Fit: %v", err) }
	p := reg.Parameters()

	for _,c := range []struct{name string; got, want float64}{
		{"k",  p.K,  kTrueParams.K},
		{"b1", p.B1, kTrueParams.B1},
		{"b2", p.B2, kTrueParams.B2},
		{"b3", p.B3, kTrueParams.B3},
	} {
		if relErr(c.got, c.want) > 1e-6 {
			t.Errorf("%s: expected %g, got %g", c.name, c.want, c.got)
		}
	}

	if reg.RSquared < 1-1e-9 {
		t.Errorf("exact data should fit perfectly, R^2=%f", reg.RSquared)
	}
	if reg.N() != 30 || reg.DegreesOfFreedom() != 26 || len(reg.Residuals) != 30 {
		t.Errorf("bad counts: n=%d dof=%d resid=%d", reg.N(), reg.DegreesOfFreedom(), len(reg.Residuals))
	}
	for i,r := range reg.Residuals {
		if math.Abs(r) > 1e-6 { t.Errorf("residual[%d] = %g", i, r) }
	}
	if events["gravity: design matrix"] != 1 || events["gravity: fitted"] != 1 {
		t.Errorf("observer saw %v", events)
	}

	// Calibrate is the same thing, minus the stats; a nil observer is fine
	if p2,err := Calibrate(obs, nil); err != nil || p2 != p {
		t.Errorf("Calibrate: %v, %v (vs %v)", p2, err, p)
	}
}

func TestCalibrationWithNoise(t *testing.T) {
	airports,dm,demand := syntheticWorld(t, testNetwork, kTrueParams)

	// Deterministic +/-5% wobble
	i := 0
	for _,r := range demand.Routes() {
		demand[r] *= 1 + 0.05*math.Sin(float64(i)*1.7)
		i++
	}

	obs,err := BuildObservations(airports, demand, dm, 2020, ap.DefaultFuelPrice)
	if err != nil { t.Fatalf("BuildObservations: %v", err) }
	reg,err := Fit(obs, nil)
	if err != nil { t.Fatalf("Fit: %v", err) }

	if reg.RSquared >= 1 || reg.RSquared < 0.5 {
		t.Errorf("unexpected R^2 %f", reg.RSquared)
	}
	for i,se := range reg.StdErr {
		if math.IsNaN(se) || se <= 0 {
			t.Errorf("stderr[%d] = %f", i, se)
		}
	}
}

func TestInvalidObservations(t *testing.T) {
	good := func() DemandObservation {
		return DemandObservation{Route:ap.NewRoute("EHAM","EDDF"), Demand:100,
			PopOrigin:1e6, PopDestination:2e6, GDPOrigin:4e4, GDPDestination:5e4, FuelCost:1.42,
			Distance:366}
	}

	tests := []struct{
		field string
		mod   func(*DemandObservation)
	}{
		{"demand",                 func(o *DemandObservation){ o.Demand = 0 }},
		{"demand",                 func(o *DemandObservation){ o.Demand = -3 }},
		{"origin population",      func(o *DemandObservation){ o.PopOrigin = 0 }},
		{"destination population", func(o *DemandObservation){ o.PopDestination = -1 }},
		{"origin GDP",             func(o *DemandObservation){ o.GDPOrigin = 0 }},
		{"destination GDP",        func(o *DemandObservation){ o.GDPDestination = math.NaN() }},
		{"distance",               func(o *DemandObservation){ o.Distance = 0 }},
		{"fuel cost",              func(o *DemandObservation){ o.FuelCost = 0 }},
		{"route",                  func(o *DemandObservation){ o.Destination = "EHAM" }},
	}

	for _,test := range tests {
		o := good()
		test.mod(&o)

		obs := []DemandObservation{good(), good(), good(), o, good()}
		_,err := Fit(obs, nil)

		var ioe *ap.InvalidObservationError
		if !errors.As(err, &ioe) {
			t.Errorf("%s: expected InvalidObservationError, got %v", test.field, err)
			continue
		}
		if ioe.Field != test.field || ioe.Origin != "EHAM" {
			t.Errorf("%s: error names %q / %s", test.field, ioe.Field, ioe.Route)
		}

		_,err = NewDemandObservation(o.Route, o.Demand, o.PopOrigin, o.PopDestination, o.GDPOrigin,
			o.GDPDestination, o.FuelCost, o.Distance)
		if !errors.As(err, &ioe) {
			t.Errorf("%s: NewDemandObservation accepted it", test.field)
		}
	}
}

func TestObservationLogsDoNotOverflow(t *testing.T) {
	o,err := NewDemandObservation(ap.NewRoute("EHAM","EDDF"), 1e300, 1e200, 1e200, 1e300, 1e300,
		1e160, 1e160)
	if err != nil { t.Fatalf("NewDemandObservation: %v", err) }

	tests := []struct{
		name      string
		got, want float64
	}{
		{"population", o.LogPopulation, 2 * math.Log(1e200)},
		{"GDP",        o.LogGDP,        2 * math.Log(1e300)},
		{"cost",       o.LogCost,       2 * math.Log(1e160)},
		{"demand",     o.LogDemand,     math.Log(1e300)},
	}
	for _,test := range tests {
		if math.IsInf(test.got, 0) || math.IsNaN(test.got) || relErr(test.got, test.want) > 1e-12 {
			t.Errorf("log %s: expected %g, got %g", test.name, test.want, test.got)
		}
	}
}

func TestBuildObservationsRejectsZeroDemand(t *testing.T) {
	airports,dm,demand := syntheticWorld(t, testNetwork, kTrueParams)
	bad := ap.NewRoute("LIRF","LPPT")
	demand[bad] = 0

	_,err := BuildObservations(airports, demand, dm, 2020, ap.DefaultFuelPrice)
	var ioe *ap.InvalidObservationError
	if !errors.As(err, &ioe) || ioe.Route != bad {
		t.Fatalf("expected InvalidObservationError for %s, got %v", bad, err)
	}

	// The caller can drop it and carry on
	obs,err := BuildObservations(airports, demand.Without(bad), dm, 2020, ap.DefaultFuelPrice)
	if err != nil || len(obs) != 29 {
		t.Errorf("after exclusion: %d obs, err %v", len(obs), err)
	}
}

func TestBuildObservationsUnknownAirport(t *testing.T) {
	airports,dm,demand := syntheticWorld(t, testNetwork, kTrueParams)
	demand.Set(ap.NewRoute("EHAM","KSFO"), 10)
	if _,err := BuildObservations(airports, demand, dm, 2020, ap.DefaultFuelPrice); err == nil {
		t.Errorf("expected error for unknown airport")
	}
}

func TestSingular(t *testing.T) {
	airports,dm,demand := syntheticWorld(t, testNetwork, kTrueParams)
	obs,_ := BuildObservations(airports, demand, dm, 2020, ap.DefaultFuelPrice)

	// Too few observations
	for n := 0; n < NumCoefficients; n++ {
		_,err := Fit(obs[:n], nil)
		var se *ap.SingularMatrixError
		if !errors.As(err, &se) || se.Observations != n {
			t.Errorf("n=%d: expected SingularMatrixError, got %v", n, err)
		}
	}

	// Four copies of the same observation
	same := []DemandObservation{obs[0], obs[0], obs[0], obs[0]}
	if _,err := Fit(same, nil); !isSingular(err) {
		t.Errorf("duplicate observations: expected SingularMatrixError, got %v", err)
	}

	// GDP identical to population, so the two columns are collinear
	collinear := []testAirport{}
	for _,a := range testNetwork {
		a.GDP = a.Pop
		collinear = append(collinear, a)
	}
	airports,dm,demand = syntheticWorld(t, collinear, kTrueParams)
	obs,_ = BuildObservations(airports, demand, dm, 2020, ap.DefaultFuelPrice)
	if _,err := Fit(obs, nil); !isSingular(err) {
		t.Errorf("collinear regressors: expected SingularMatrixError, got %v", err)
	}
}

func isSingular(err error) bool {
	var se *ap.SingularMatrixError
	return errors.As(err, &se)
}

func TestForecast(t *testing.T) {
	f := NewForecaster(kTrueParams, 1.42)
	got := f.Forecast(1e6, 2e6, 3e4, 4e4, 800)
	want := 0.004 * math.Pow(2e12, 0.45) * math.Pow(1.2e9, 0.3) * math.Pow(1.42*800, -0.8)
	if relErr(got, want) > 1e-12 {
		t.Errorf("Forecast: expected %g, got %g", want, got)
	}

	// Demand decays with distance
	if f.Forecast(1e6, 2e6, 3e4, 4e4, 1600) >= got {
		t.Errorf("demand should fall with distance")
	}
}

func TestForecastMatrixProjects(t *testing.T) {
	airports := makeAirports(t, testNetwork)
	dm,_ := geodesic.NewDistanceMatrix(airports)
	f := NewForecaster(kTrueParams, 1.42)

	d2020,err := f.ForecastMatrix(airports, dm, 2020)
	if err != nil { t.Fatalf("2020: %v", err) }
	d2025,err := f.ForecastMatrix(airports, dm, 2025)
	if err != nil { t.Fatalf("2025: %v", err) }

	// Everything grew 2%/yr for five years; demand scales by growth^(2*(b1+b2))
	growth := math.Pow(math.Pow(1.02,5), 2*(kTrueParams.B1+kTrueParams.B2))
	for _,r := range d2020.Routes() {
		if relErr(d2025[r], d2020[r]*growth) > 1e-9 {
			t.Errorf("%s: 2020=%f 2025=%f, expected ratio %f", r, d2020[r], d2025[r], growth)
		}
	}

	// An airport with one year of data can't be projected
	short := airports.Airports()
	short[0].PopulationByYear = map[int]float64{2020:2.4e6}
	shortSet,_ := ap.NewAirportSet(short...)
	if _,err := f.ForecastMatrix(shortSet, dm, 2025); err == nil {
		t.Errorf("expected projection error")
	}
}
