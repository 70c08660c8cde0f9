package report

import(
	"fmt"
	"strings"

	"github.com/skypies/util/histogram"
)

func init() {
	HandleReport("distances", DistancesReporter, "Great-circle distance for every airport pair")
	HandleReport("airports", AirportsReporter, "Airports, with base year economics and nearest neighbours")
}

// One row per unordered pair. MinValue is a distance in km.
func DistancesReporter(r *Report, in *Inputs) error {
	r.SetHeaders("Origin", "Destination", "KM")
	r.H = histogram.Histogram{ValMin:0, ValMax:20000, NumBuckets:20}

	codes := in.Distances.Codes()
	for i := 0; i < len(codes); i++ {
		for j := i+1; j < len(codes); j++ {
			if r.full() { return nil }
			if !r.Options.wantsCode(codes[i], codes[j]) {
				r.I["[B] skipped: not a requested airport"]++
				continue
			}
			km := in.Distances.MustDistance(codes[i], codes[j])
			if km < r.Options.MinValue {
				r.I["[B] skipped: too short"]++
				continue
			}
			r.H.Add(histogram.ScalarVal(km))
			r.AddRow(codes[i], codes[j], fmt.Sprintf("%.1f", km))
		}
	}

	max,route := in.Distances.Max()
	r.S["[C] longest pair"] = fmt.Sprintf("%s (%.0fkm)", route, max)
	return nil
}

func AirportsReporter(r *Report, in *Inputs) error {
	if in.Airports.Len() == 0 { return missing(r.Name, "airports") }
	r.SetHeaders("Code", "City", "Lat", "Long",
		fmt.Sprintf("Population %d", in.BaseYear), fmt.Sprintf("GDP %d", in.BaseYear), "Nearest")

	for _,a := range in.Airports.Airports() {
		if r.full() { break }
		if !r.Options.wantsCode(a.Code) { continue }

		pop,gdp := "", ""
		if v,err := a.PopulationIn(in.BaseYear); err == nil { pop = fmt.Sprintf("%.0f", v) }
		if v,err := a.GDPIn(in.BaseYear); err == nil { gdp = fmt.Sprintf("%.0f", v) }
		if pop == "" || gdp == "" {
			r.Infof("%s: no economics for %d\n", a.Code, in.BaseYear)
		}

		nearest := in.Distances.Nearest(a.Code)
		if len(nearest) > 3 { nearest = nearest[:3] }

		r.AddRow(a.Code, a.City, fmt.Sprintf("%.4f", a.Lat), fmt.Sprintf("%.4f", a.Long), pop, gdp,
			strings.Join(nearest, " "))
	}
	return nil
}
