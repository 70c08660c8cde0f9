package fpdf

import(
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/gijsvdklink/Airline-planning/gravity"
)

// A FitPdf plots observed against fitted log demand for each observation in a
// regression. A perfect fit puts every point on the diagonal.
type FitPdf struct {
	*gravity.Regression
	Title        string

	Grid        *BaseGrid
	*gofpdf.Fpdf         // embedded
}

// {{{ fp.Init

func (fp *FitPdf)Init() error {
	if fp.Regression == nil || fp.N() == 0 { return fmt.Errorf("fit plot: no regression") }

	fp.Fpdf = gofpdf.New("P", "mm", "A4", "")
	fp.AddPage()

	min,max := math.Inf(1), math.Inf(-1)
	for i,o := range fp.Observations {
		fitted := o.LogDemand - fp.Residuals[i]
		min = math.Min(min, math.Min(o.LogDemand, fitted))
		max = math.Max(max, math.Max(o.LogDemand, fitted))
	}
	min,max = math.Floor(min), math.Ceil(max)
	if max == min { max = min+1 }

	fp.Grid = &BaseGrid{
		Fpdf: fp.Fpdf,
		OffsetU: 20, OffsetV: 25,
		W: 160, H: 160,
		MinX: min, MaxX: max,
		MinY: min, MaxY: max,
		XGridlineEvery: 1, YGridlineEvery: 1,
		XTickFmt: "%.0f", YTickFmt: "%.0f",
		Clip: true,
	}
	return nil
}

// }}}
// {{{ fp.Draw

func (fp *FitPdf)Draw() {
	DrawTitle(fp.Fpdf, fp.Title)
	fp.Grid.DrawGridlines()

	fp.SetLineWidth(0.2)
	fp.SetDashPattern([]float64{2,2}, 0)
	fp.Grid.LineColor = GreyRGB
	fp.Grid.Line(fp.Grid.MinX, fp.Grid.MinY, fp.Grid.MaxX, fp.Grid.MaxY)
	fp.SetDashPattern([]float64{}, 0)

	maxAbs := 0.0
	for _,r := range fp.Residuals { maxAbs = math.Max(maxAbs, math.Abs(r)) }

	for i,o := range fp.Observations {
		f := 0.0
		if maxAbs > 0 { f = math.Abs(fp.Residuals[i]) / maxAbs }
		rgb := fractionToRGB(f)
		fp.SetFillColor(rgb[0], rgb[1], rgb[2])
		fp.Grid.Dot(o.LogDemand - fp.Residuals[i], o.LogDemand, 0.8)
	}

	fp.SetFont("Arial", "", 8)
	fp.Text(fp.Grid.OffsetU + fp.Grid.W/2 - 15, fp.Grid.OffsetV+fp.Grid.H+10, "fitted log(demand)")
	fp.TransformBegin()
	fp.TransformRotate(90, fp.Grid.OffsetU-8, fp.Grid.OffsetV+fp.Grid.H/2+15)
	fp.Text(fp.Grid.OffsetU-8, fp.Grid.OffsetV+fp.Grid.H/2+15, "observed log(demand)")
	fp.TransformEnd()

	p := fp.Parameters()
	DrawCaption(fp.Fpdf, fp.Grid.OffsetU, fp.Grid.OffsetV+fp.Grid.H+15, fmt.Sprintf(
		"n=%d, R^2=%.4f, adj R^2=%.4f\n%s", fp.N(), fp.RSquared, fp.AdjRSquared, p))
}

// }}}

func (fp *FitPdf)Output(w io.Writer) error { return write(fp.Fpdf, w) }

func WriteFitPlot(w io.Writer, title string, reg *gravity.Regression) error {
	fp := FitPdf{Regression:reg, Title:title}
	if err := fp.Init(); err != nil { return err }
	fp.Draw()
	return fp.Output(w)
}
