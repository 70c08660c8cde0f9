package airplan

import(
	"fmt"
	"math"
	"sort"

	"github.com/skypies/geo"
)

// An Airport is a node in the network, with the socio-economic data the gravity
// model needs. It is reference data: loaded once, never modified.
type Airport struct {
	Code           string   // ICAO (or IATA) code; the identifier used everywhere else
	City           string   // Used to join against the population/GDP tables

	geo.Latlong             // Embedded, decimal degrees

	PopulationByYear map[int]float64
	GDPByYear        map[int]float64
}

func (a Airport)String() string {
	return fmt.Sprintf("%s (%s) %s, %d pop years, %d gdp years", a.Code, a.City, a.Latlong,
		len(a.PopulationByYear), len(a.GDPByYear))
}

func (a Airport)PopulationIn(year int) (float64, error) {
	v,err := projectSeries(a.PopulationByYear, year)
	if err != nil { return 0, fmt.Errorf("%s population: %v", a.Code, err) }
	return v, nil
}

func (a Airport)GDPIn(year int) (float64, error) {
	v,err := projectSeries(a.GDPByYear, year)
	if err != nil { return 0, fmt.Errorf("%s GDP: %v", a.Code, err) }
	return v, nil
}

// {{{ projectSeries

// projectSeries returns the value for the year. When the year is not in the
// series, it assumes constant annual growth between the two closest known
// years (bracketing ones if possible) and projects from those.
func projectSeries(series map[int]float64, year int) (float64, error) {
	if v,exists := series[year]; exists {
		return v, nil
	}
	if len(series) < 2 {
		return 0, fmt.Errorf("no value for %d, and %d years known (need 2 to project)", year, len(series))
	}

	years := []int{}
	for y,_ := range series { years = append(years, y) }
	sort.Ints(years)

	// Pick the pair of years [y1,y2] to grow from.
	i := sort.SearchInts(years, year) // first year > target, since target isn't present
	switch {
	case i == 0:          i = 1
	case i == len(years): i = len(years)-1
	}
	y1,y2 := years[i-1], years[i]
	v1,v2 := series[y1], series[y2]

	if v1 <= 0 || v2 <= 0 {
		return 0, fmt.Errorf("can't project %d from non-positive values (%d:%g, %d:%g)",
			year, y1, v1, y2, v2)
	}

	growth := math.Pow(v2/v1, 1.0/float64(y2-y1))
	return v1 * math.Pow(growth, float64(year-y1)), nil
}

// }}}

// AirportSet is an ordered list of airports with unique codes. The order is the
// order in which they were loaded, and is the row/column order for matrices.
type AirportSet struct {
	airports []Airport
	index    map[string]int
}

func NewAirportSet(airports ...Airport) (AirportSet, error) {
	s := AirportSet{index:map[string]int{}}
	for _,a := range airports {
		if a.Code == "" {
			return AirportSet{}, fmt.Errorf("airport with empty code (city %q)", a.City)
		}
		if _,exists := s.index[a.Code]; exists {
			return AirportSet{}, fmt.Errorf("airport %s listed twice", a.Code)
		}
		s.index[a.Code] = len(s.airports)
		s.airports = append(s.airports, a)
	}
	return s, nil
}

func (s AirportSet)Len() int { return len(s.airports) }
func (s AirportSet)At(i int) Airport { return s.airports[i] }

func (s AirportSet)Lookup(code string) (Airport, bool) {
	i,exists := s.index[code]
	if !exists { return Airport{}, false }
	return s.airports[i], true
}

func (s AirportSet)Codes() []string {
	out := make([]string, len(s.airports))
	for i,a := range s.airports { out[i] = a.Code }
	return out
}

// Airports returns a copy of the underlying list.
func (s AirportSet)Airports() []Airport {
	return append([]Airport{}, s.airports...)
}

func (s AirportSet)String() string {
	str := fmt.Sprintf("--- airports (%d) ---\n", len(s.airports))
	for _,a := range s.airports {
		str += fmt.Sprintf(" %s\n", a)
	}
	return str
}
