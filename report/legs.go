package report

import(
	"fmt"
)

func init() {
	HandleReport("legs", LegsReporter, "Per-leg operating data for every hub route and aircraft type")
}

// MinValue is a profit per flight; set it to skip loss-making legs.
func LegsReporter(r *Report, in *Inputs) error {
	if len(in.Legs) == 0 { return missing(r.Name, "legs") }

	r.SetHeaders("Route", "Aircraft", "KM", "Feasible", "Block hours", "Max flights/wk",
		"Cost/flight", "Revenue/flight", "Profit/flight")
	r.S["[A] network"] = in.Network.String()

	for _,l := range in.Legs {
		if r.full() { break }
		if !r.Options.wantsCode(l.Origin, l.Destination) { continue }
		if !l.Feasible {
			r.I["[B] out of range"]++
		}
		if r.Options.MinValue != 0 && l.ProfitPerFlight() < r.Options.MinValue { continue }

		r.AddRow(l.Route.String(), l.Aircraft, fmt.Sprintf("%.1f", l.DistanceKM),
			fmt.Sprintf("%v", l.Feasible), fmt.Sprintf("%.2f", l.BlockHours),
			fmt.Sprintf("%d", l.MaxWeeklyFlights), fmt.Sprintf("%.0f", l.CostPerFlight),
			fmt.Sprintf("%.0f", l.RevenuePerFlight), fmt.Sprintf("%.0f", l.ProfitPerFlight()))
	}
	return nil
}
