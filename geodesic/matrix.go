package geodesic

import(
	"fmt"
	"sort"

	ap "github.com/gijsvdklink/Airline-planning"
)

// A DistanceMatrix holds the great-circle distance (KM) for every ordered pair of
// a fixed set of airports, including each airport to itself (0). It is built once
// and never modified; everything downstream in a run (calibration, forecasting,
// leg economics) should share the one instance.
type DistanceMatrix struct {
	codes []string
	index map[string]int
	km    []float64 // row-major, len(codes)^2
}

// {{{ NewDistanceMatrix

// NewDistanceMatrix computes distances for all pairs of airports in the set.
// Each unordered pair is computed once and mirrored, so the matrix is exactly
// symmetric.
func NewDistanceMatrix(airports ap.AirportSet) (*DistanceMatrix, error) {
	n := airports.Len()
	dm := DistanceMatrix{
		codes: airports.Codes(),
		index: map[string]int{},
		km: make([]float64, n*n),
	}

	for i := 0; i < n; i++ {
		a := airports.At(i)
		if err := Validate(a.Latlong); err != nil {
			err.(*ap.DomainError).Location = a.Code
			return nil, err
		}
		dm.index[a.Code] = i
	}

	for i := 0; i < n; i++ {
		for j := i+1; j < n; j++ {
			d := haversine(airports.At(i).Latlong, airports.At(j).Latlong)
			dm.km[i*n+j] = d
			dm.km[j*n+i] = d
		}
	}
	
	return &dm, nil
}

// }}}

func (dm *DistanceMatrix)Len() int { return len(dm.codes) }

// Codes returns the airport codes, in row/column order.
func (dm *DistanceMatrix)Codes() []string { return append([]string{}, dm.codes...) }

func (dm *DistanceMatrix)Has(code string) bool {
	_,exists := dm.index[code]
	return exists
}

// Distance returns false if either airport is not in the matrix.
func (dm *DistanceMatrix)Distance(origin, destination string) (float64, bool) {
	i,ok1 := dm.index[origin]
	j,ok2 := dm.index[destination]
	if !ok1 || !ok2 { return 0, false }
	return dm.km[i*len(dm.codes)+j], true
}

func (dm *DistanceMatrix)RouteDistance(r ap.Route) (float64, bool) {
	return dm.Distance(r.Origin, r.Destination)
}

// MustDistance panics on unknown airports; only for use with codes taken from
// the matrix itself.
func (dm *DistanceMatrix)MustDistance(origin, destination string) float64 {
	d,ok := dm.Distance(origin, destination)
	if !ok { panic(fmt.Sprintf("DistanceMatrix: %s-%s not known", origin, destination)) }
	return d
}

// Each calls f for every one of the N^2 entries, row by row.
func (dm *DistanceMatrix)Each(f func(origin, destination string, km float64)) {
	n := len(dm.codes)
	for i,o := range dm.codes {
		for j,d := range dm.codes {
			f(o, d, dm.km[i*n+j])
		}
	}
}

// Max returns the longest distance in the matrix, and the route it belongs to.
func (dm *DistanceMatrix)Max() (float64, ap.Route) {
	max,route := 0.0, ap.Route{}
	dm.Each(func(o,d string, km float64) {
		if km > max { max,route = km,ap.NewRoute(o,d) }
	})
	return max,route
}

// Nearest returns the other airports in the matrix, closest first.
func (dm *DistanceMatrix)Nearest(code string) []string {
	out := []string{}
	for _,c := range dm.codes {
		if c != code { out = append(out, c) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		di,_ := dm.Distance(code, out[i])
		dj,_ := dm.Distance(code, out[j])
		return di < dj
	})
	return out
}

func (dm *DistanceMatrix)String() string {
	str := fmt.Sprintf("--- distance matrix (%d airports) ---\n%6s", len(dm.codes), "")
	for _,c := range dm.codes { str += fmt.Sprintf(" %7.7s", c) }
	str += "\n"
	for i,o := range dm.codes {
		str += fmt.Sprintf("%6.6s", o)
		for j,_ := range dm.codes {
			str += fmt.Sprintf(" %7.0f", dm.km[i*len(dm.codes)+j])
		}
		str += "\n"
	}
	return str
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
