package report

import(
	"fmt"
	"math"

	"github.com/skypies/util/histogram"

	"github.com/gijsvdklink/Airline-planning/gravity"
)

func init() {
	HandleReport("calibration", CalibrationReporter, "Observed vs fitted demand, per route")
	SummarizeReport("calibration", summarizeFit)
	HandleReport("coefficients", CoefficientsReporter, "Regression coefficients and model parameters")
}

// One row per observation. The histogram tracks |residual| in thousandths of a
// log unit. MinValue is an observed demand.
func CalibrationReporter(r *Report, in *Inputs) error {
	reg := in.Regression
	if reg == nil { return missing(r.Name, "regression") }

	r.SetHeaders("Route", "KM", "Observed", "Fitted", "Residual")
	for i,o := range reg.Observations {
		if r.full() { break }
		if !r.Options.wantsCode(o.Origin, o.Destination) { continue }
		if o.Demand < r.Options.MinValue { continue }

		res := reg.Residuals[i]
		fitted := math.Exp(o.LogDemand - res)
		r.H.Add(histogram.ScalarVal(math.Abs(res) * 1000))
		r.AddRow(o.Route.String(), fmt.Sprintf("%.1f", o.Distance), fmt.Sprintf("%.1f", o.Demand),
			fmt.Sprintf("%.1f", fitted), fmt.Sprintf("%+.4f", res))
	}
	return nil
}

func summarizeFit(r *Report) {
	r.Infof("residuals, |r|*1000:-\n%v\n", r.H)
}

func CoefficientsReporter(r *Report, in *Inputs) error {
	reg := in.Regression
	if reg == nil { return missing(r.Name, "regression") }

	r.SetHeaders("Coefficient", "Beta", "StdErr", "T")
	for i,name := range gravity.CoefficientNames {
		r.AddRow(name, fmt.Sprintf("%.6f", reg.Beta[i]), fmt.Sprintf("%.6f", reg.StdErr[i]),
			fmt.Sprintf("%.3f", reg.TStat[i]))
	}

	p := reg.Parameters()
	r.F["[A] k"] = p.K
	r.F["[A] b1"] = p.B1
	r.F["[A] b2"] = p.B2
	r.F["[A] b3"] = p.B3
	r.F["[B] R^2"] = reg.RSquared
	r.F["[B] adj R^2"] = reg.AdjRSquared
	r.F["[B] cond(X'X)"] = reg.Condition
	r.I["[B] N"] = reg.N()
	return nil
}
