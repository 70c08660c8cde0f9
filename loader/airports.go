package loader

import(
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/skypies/geo"

	ap "github.com/gijsvdklink/Airline-planning"
)

// Population/GDP columns carry the year in their name: Population_2020, GDP 2023, pop2020
var kYearColumnRegexp = regexp.MustCompile(`(?i)^(population|pop|gdp)[ _-]?(\d{4})$`)

var(
	kCodeColumns = []string{"Code", "ICAO", "ICAO Code", "IATA", "Airport"}
	kCityColumns = []string{"City", "Name"}
	kLatColumns  = []string{"Latitude", "Lat"}
	kLongColumns = []string{"Longitude", "Long", "Lon", "Lng"}
)

// Economics holds the population and GDP series for one city.
type Economics struct {
	PopulationByYear map[int]float64
	GDPByYear        map[int]float64
}

// parseNumber accepts thousands separators ("1,234,567") and blanks around.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return strconv.ParseFloat(s, 64)
}

type yearColumn struct {
	header string
	year   int
	gdp    bool
}

func yearColumns(t Table) []yearColumn {
	out := []yearColumn{}
	for _,h := range t.Headers {
		m := kYearColumnRegexp.FindStringSubmatch(h)
		if m == nil { continue }
		year,_ := strconv.Atoi(m[2]) // no errors here; regexp says four digits
		out = append(out, yearColumn{header:h, year:year, gdp:strings.EqualFold(m[1], "gdp")})
	}
	return out
}

// {{{ readEconomics

func readEconomics(t Table, rowNum int, cols []yearColumn) (Economics, error) {
	e := Economics{PopulationByYear:map[int]float64{}, GDPByYear:map[int]float64{}}
	row := t.Row(rowNum)
	for _,yc := range cols {
		cell := row[yc.header]
		if cell == "" { continue }
		v,err := parseNumber(cell)
		if err != nil {
			return e, errors.Errorf("%s row %d, column %q: bad number %q", t.Name, rowNum+1,
				yc.header, cell)
		}
		if yc.gdp {
			e.GDPByYear[yc.year] = v
		} else {
			e.PopulationByYear[yc.year] = v
		}
	}
	return e, nil
}

// }}}
// {{{ ReadAirports

// ReadAirports reads one airport per row. Code, Latitude and Longitude are
// required; City and any Population_YYYY / GDP_YYYY columns are optional.
func ReadAirports(t Table) (ap.AirportSet, error) {
	codeCol,ok := t.Column(kCodeColumns...)
	if !ok { return ap.AirportSet{}, errors.Errorf("%s: no airport code column", t.Name) }
	latCol,ok := t.Column(kLatColumns...)
	if !ok { return ap.AirportSet{}, errors.Errorf("%s: no latitude column", t.Name) }
	longCol,ok := t.Column(kLongColumns...)
	if !ok { return ap.AirportSet{}, errors.Errorf("%s: no longitude column", t.Name) }
	cityCol,hasCity := t.Column(kCityColumns...)
	codeH,latH,longH := t.Headers[codeCol], t.Headers[latCol], t.Headers[longCol]

	years := yearColumns(t)
	airports := []ap.Airport{}

	for i := range t.Rows {
		row := t.Row(i)
		lat,err := parseNumber(row[latH])
		if err != nil {
			return ap.AirportSet{}, errors.Errorf("%s row %d: bad latitude %q", t.Name, i+1, row[latH])
		}
		long,err := parseNumber(row[longH])
		if err != nil {
			return ap.AirportSet{}, errors.Errorf("%s row %d: bad longitude %q", t.Name, i+1, row[longH])
		}

		econ,err := readEconomics(t, i, years)
		if err != nil { return ap.AirportSet{}, err }

		a := ap.Airport{
			Code: strings.ToUpper(row[codeH]),
			Latlong: geo.Latlong{Lat:lat, Long:long},
			PopulationByYear: econ.PopulationByYear,
			GDPByYear: econ.GDPByYear,
		}
		if hasCity { a.City = row[t.Headers[cityCol]] }

		airports = append(airports, a)
	}

	s,err := ap.NewAirportSet(airports...)
	if err != nil { return ap.AirportSet{}, errors.Wrap(err, t.Name) }
	return s, nil
}

// }}}
// {{{ ReadEconomics

// ReadEconomics reads a per-city table of Population_YYYY / GDP_YYYY columns,
// keyed by the City column.
func ReadEconomics(t Table) (map[string]Economics, error) {
	cityCol,ok := t.Column(kCityColumns...)
	if !ok { return nil, errors.Errorf("%s: no city column", t.Name) }

	years := yearColumns(t)
	if len(years) == 0 {
		return nil, errors.Errorf("%s: no Population_YYYY or GDP_YYYY columns", t.Name)
	}

	out := map[string]Economics{}
	for i,row := range t.Rows {
		city := row[cityCol]
		if city == "" { continue }
		econ,err := readEconomics(t, i, years)
		if err != nil { return nil, err }
		out[city] = econ
	}
	return out, nil
}

// }}}
// {{{ ApplyEconomics

// ApplyEconomics returns a new airport set, with each airport's series extended by
// the economics of its city. Values already on the airport win. Every airport's
// city must be present in econ.
func ApplyEconomics(airports ap.AirportSet, econ map[string]Economics) (ap.AirportSet, error) {
	out := []ap.Airport{}

	for _,a := range airports.Airports() {
		e,exists := econ[a.City]
		if !exists {
			return ap.AirportSet{}, errors.Errorf("airport %s: no population/GDP data for city %q",
				a.Code, a.City)
		}
		a.PopulationByYear = mergeSeries(e.PopulationByYear, a.PopulationByYear)
		a.GDPByYear = mergeSeries(e.GDPByYear, a.GDPByYear)
		out = append(out, a)
	}

	return ap.NewAirportSet(out...)
}

func mergeSeries(base, override map[int]float64) map[int]float64 {
	out := map[int]float64{}
	for y,v := range base { out[y] = v }
	for y,v := range override { out[y] = v }
	return out
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
