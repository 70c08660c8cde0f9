package gravity

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	ap "github.com/gijsvdklink/Airline-planning"
)

const(
	// NumCoefficients is the width of the design matrix: intercept, population,
	// GDP, cost.
	NumCoefficients = 4

	// X'X with a condition number above this is treated as singular; the inverse
	// would be numerical noise.
	kMaxCondition = 1e12
)

var CoefficientNames = [NumCoefficients]string{"const", "log_population", "log_gdp", "log_cost"}

// Regression is the outcome of fitting the log-linear model.
type Regression struct {
	Observations   []DemandObservation

	Beta           [NumCoefficients]float64
	StdErr         [NumCoefficients]float64 // NaN if there are no degrees of freedom
	TStat          [NumCoefficients]float64

	Residuals      []float64  // log(demand) - fitted, in observation order
	RSquared       float64
	AdjRSquared    float64
	ResidualVar    float64    // SSR / (n-p)
	Condition      float64    // of X'X
}

func (reg Regression)N() int { return len(reg.Observations) }
func (reg Regression)DegreesOfFreedom() int { return len(reg.Observations) - NumCoefficients }

// Parameters converts the raw coefficients into the model's parameters.
func (reg Regression)Parameters() Parameters {
	return Parameters{
		K:  math.Exp(reg.Beta[0]),
		B1: reg.Beta[1],
		B2: reg.Beta[2],
		B3: -reg.Beta[3], // reported as a (positive) decay rate
	}
}

func (reg Regression)String() string {
	str := fmt.Sprintf("OLS: n=%d, dof=%d, R^2=%.4f (adj %.4f), cond(X'X)=%.3g\n",
		reg.N(), reg.DegreesOfFreedom(), reg.RSquared, reg.AdjRSquared, reg.Condition)
	for i,name := range CoefficientNames {
		str += fmt.Sprintf("  %-15s % 12.6f  se=%10.6f  t=% 8.3f\n", name, reg.Beta[i], reg.StdErr[i],
			reg.TStat[i])
	}
	return str
}

// {{{ Fit

// Fit regresses log(demand) on [1, log(pop_i*pop_j), log(gdp_i*gdp_j), log(fuel*d_ij)]
// via the normal equations, beta = (X'X)^-1 X'y. The inputs are not modified.
//
// Observations are validated first (*ap.InvalidObservationError). Fewer than
// NumCoefficients observations, or collinear regressors, give an
// *ap.SingularMatrixError.
func Fit(obs []DemandObservation, observer Observer) (*Regression, error) {
	n := len(obs)

	for _,o := range obs {
		if err := o.Validate(); err != nil {
			observer.emit("gravity: invalid observation", "route", o.Route.String(), "err", err)
			return nil, err
		}
	}
	if n < NumCoefficients {
		return nil, &ap.SingularMatrixError{Observations:n,
			Reason:fmt.Sprintf("need at least %d observations", NumCoefficients)}
	}

	reg := Regression{Observations: make([]DemandObservation, n)}

	X := mat.NewDense(n, NumCoefficients, nil)
	y := mat.NewVecDense(n, nil)
	for i,o := range obs {
		o = o.derive() // never trust the caller's log fields
		reg.Observations[i] = o
		X.SetRow(i, []float64{1, o.LogPopulation, o.LogGDP, o.LogCost})
		y.SetVec(i, o.LogDemand)
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	reg.Condition = mat.Cond(&xtx, 1)
	observer.emit("gravity: design matrix", "rows", n, "cols", NumCoefficients, "cond", reg.Condition)

	if math.IsInf(reg.Condition, 1) || math.IsNaN(reg.Condition) || reg.Condition > kMaxCondition {
		return nil, &ap.SingularMatrixError{Observations:n,
			Reason:fmt.Sprintf("X'X is not invertible (condition number %.3g)", reg.Condition)}
	}

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, &ap.SingularMatrixError{Observations:n, Reason:err.Error()}
	}

	var xty, beta mat.VecDense
	xty.MulVec(X.T(), y)
	beta.MulVec(&inv, &xty)
	for i := 0; i < NumCoefficients; i++ {
		reg.Beta[i] = beta.AtVec(i)
	}

	reg.computeStats(X, y, &inv)

	observer.emit("gravity: fitted", "beta", reg.Beta, "rsquared", reg.RSquared,
		"params", reg.Parameters().String())

	return &reg, nil
}

// }}}
// {{{ reg.computeStats

func (reg *Regression)computeStats(X *mat.Dense, y *mat.VecDense, inv *mat.Dense) {
	n := y.Len()

	var fitted mat.VecDense
	fitted.MulVec(X, mat.NewVecDense(NumCoefficients, reg.Beta[:]))

	mean := 0.0
	for i := 0; i < n; i++ { mean += y.AtVec(i) }
	mean /= float64(n)

	ssr,sst := 0.0, 0.0
	reg.Residuals = make([]float64, n)
	for i := 0; i < n; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		reg.Residuals[i] = r
		ssr += r*r
		sst += (y.AtVec(i)-mean) * (y.AtVec(i)-mean)
	}

	reg.RSquared = math.NaN()
	if sst > 0 {
		reg.RSquared = 1 - ssr/sst
	}

	dof := n - NumCoefficients
	reg.ResidualVar = math.NaN()
	reg.AdjRSquared = math.NaN()
	if dof > 0 {
		reg.ResidualVar = ssr / float64(dof)
		reg.AdjRSquared = 1 - (1-reg.RSquared) * float64(n-1) / float64(dof)
	}

	for i := 0; i < NumCoefficients; i++ {
		reg.StdErr[i] = math.Sqrt(reg.ResidualVar * inv.At(i,i))
		reg.TStat[i] = reg.Beta[i] / reg.StdErr[i]
	}
}

// }}}

// Calibrate fits the model and returns its parameters (k, b1, b2, b3).
func Calibrate(obs []DemandObservation, observer Observer) (Parameters, error) {
	reg,err := Fit(obs, observer)
	if err != nil { return Parameters{}, err }
	return reg.Parameters(), nil
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
