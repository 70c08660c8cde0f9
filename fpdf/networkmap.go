package fpdf

import(
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	gogeo "github.com/paulmach/go.geo"

	ap "github.com/gijsvdklink/Airline-planning"
)

// A NetworkMapPdf draws airports on an equirectangular map, with a line for each
// route in the demand matrix, coloured and thickened by demand.
type NetworkMapPdf struct {
	Airports    ap.AirportSet
	Demand      ap.DemandMatrix
	Hub         string   // drawn larger, in red; optional
	Title       string
	Caption     string

	MaxLineMM   float64  // width of the busiest route

	Grid       *BaseGrid
	*gofpdf.Fpdf         // embedded
}

// {{{ nm.Init

// Init sets up a landscape page, with a grid sized to the airports plus a margin.
func (nm *NetworkMapPdf)Init() error {
	if nm.Airports.Len() == 0 { return fmt.Errorf("network map: no airports") }
	if nm.MaxLineMM == 0 { nm.MaxLineMM = 1.5 }

	nm.Fpdf = gofpdf.New("L", "mm", "A4", "")
	nm.AddPage()

	// x is longitude, y latitude
	ps := gogeo.NewPointSet()
	for _,a := range nm.Airports.Airports() {
		ps.Push(gogeo.NewPoint(a.Long, a.Lat))
	}
	bound := ps.Bound().Pad(2)
	minLat,maxLat := bound.Bottom(), bound.Top()
	minLong,maxLong := bound.Left(), bound.Right()

	// Keep degrees of longitude and latitude the same size on the page, at the mid latitude
	squash := math.Cos((minLat+maxLat) / 2 * math.Pi / 180)
	w,h := 230.0, 170.0
	dx,dy := (maxLong-minLong)*squash, maxLat-minLat
	if dx/dy > w/h { h = w * dy/dx } else { w = h * dx/dy }

	nm.Grid = &BaseGrid{
		Fpdf: nm.Fpdf,
		OffsetU: 15,
		OffsetV: 20,
		W: w,
		H: h,
		MinX: minLong, MaxX: maxLong,
		MinY: minLat, MaxY: maxLat,
		XGridlineEvery: 5, YGridlineEvery: 5,
		XTickFmt: "%.0f", YTickFmt: "%.0f",
	}
	return nil
}

// }}}
// {{{ nm.Draw

func (nm *NetworkMapPdf)Draw() {
	DrawTitle(nm.Fpdf, nm.Title)
	nm.Grid.DrawGridlines()

	max := 0.0
	for _,d := range nm.Demand { max = math.Max(max, d) }

	// Routes are drawn as one line per unordered pair, using the busier direction
	drawn := map[ap.Route]bool{}
	for _,r := range nm.Demand.Routes() {
		if drawn[r] || drawn[r.Reverse()] { continue }
		drawn[r] = true

		from,ok1 := nm.Airports.Lookup(r.Origin)
		to,ok2 := nm.Airports.Lookup(r.Destination)
		if !ok1 || !ok2 { continue }

		d,_ := nm.Demand.Get(r)
		if back,exists := nm.Demand.Get(r.Reverse()); exists && back > d { d = back }
		if max <= 0 || d <= 0 { continue }

		f := d/max
		rgb := fractionToRGB(f)
		nm.SetAlpha(0.3 + 0.7*f, "Normal")
		nm.SetLineWidth(0.1 + f*nm.MaxLineMM)
		nm.Grid.LineColor = rgb
		nm.Grid.Line(from.Long, from.Lat, to.Long, to.Lat)
	}
	nm.SetAlpha(1.0, "Normal")

	nm.SetFont("Arial", "", 8)
	for _,a := range nm.Airports.Airports() {
		r := 1.0
		if a.Code == nm.Hub {
			r = 2.0
			nm.SetFillColor(RedRGB[0], RedRGB[1], RedRGB[2])
		} else {
			nm.SetFillColor(BlueRGB[0], BlueRGB[1], BlueRGB[2])
		}
		nm.Grid.Dot(a.Long, a.Lat, r)
		nm.Grid.Label(a.Long, a.Lat, a.Code)
	}

	if max > 0 {
		DrawGradientKey(nm.Fpdf, nm.Grid.OffsetU+nm.Grid.W+14, nm.Grid.OffsetV, 0, max, "%.0f")
	}
	if nm.Caption != "" {
		DrawCaption(nm.Fpdf, nm.Grid.OffsetU, nm.Grid.OffsetV+nm.Grid.H+7, nm.Caption)
	}
}

// }}}

func (nm *NetworkMapPdf)Output(w io.Writer) error { return write(nm.Fpdf, w) }

// WriteNetworkMap is the one-shot version.
func WriteNetworkMap(w io.Writer, title string, airports ap.AirportSet, demand ap.DemandMatrix, hub string) error {
	nm := NetworkMapPdf{Airports:airports, Demand:demand, Hub:hub, Title:title,
		Caption: fmt.Sprintf("%d airports, %d routes, total demand %.0f", airports.Len(),
			len(demand), demand.Total())}
	if err := nm.Init(); err != nil { return err }
	nm.Draw()
	return nm.Output(w)
}
