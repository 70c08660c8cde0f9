package report

import(
	"fmt"

	"github.com/skypies/util/histogram"
)

func init() {
	HandleReport("forecast", ForecastReporter, "Forecast demand per route, with growth over the base year")
}

// The histogram tracks growth in percent, offset by 500 so shrinking routes fit.
// MinValue is a forecast demand.
func ForecastReporter(r *Report, in *Inputs) error {
	if in.Forecast == nil { return missing(r.Name, "forecast") }

	r.SetHeaders("Route", "KM", fmt.Sprintf("Demand %d", in.BaseYear),
		fmt.Sprintf("Forecast %d", in.ForecastYear), "Growth %")

	for _,route := range in.Forecast.Routes() {
		if r.full() { break }
		if !r.Options.wantsCode(route.Origin, route.Destination) { continue }

		f,_ := in.Forecast.Get(route)
		if f < r.Options.MinValue { continue }
		km,_ := in.Distances.RouteDistance(route)

		base,growth := "", ""
		if d,exists := in.Demand.Get(route); exists && d > 0 {
			pct := 100 * (f-d) / d
			r.H.Add(histogram.ScalarVal(pct + 500))
			base,growth = fmt.Sprintf("%.1f", d), fmt.Sprintf("%+.1f", pct)
		} else {
			r.I["[B] no base year demand"]++
		}

		r.AddRow(route.String(), fmt.Sprintf("%.1f", km), base, fmt.Sprintf("%.1f", f), growth)
	}

	r.F["[C] total forecast"] = in.Forecast.Total()
	if in.Demand != nil {
		r.F["[C] total base"] = in.Demand.Total()
	}
	return nil
}
