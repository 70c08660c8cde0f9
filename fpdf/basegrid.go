package fpdf

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// A BaseGrid maps a rectangle of (x,y) values onto a rectangle of the PDF page.
type BaseGrid struct {
	*gofpdf.Fpdf        // Embed the thing we're writing to

	OffsetU, OffsetV    float64 // top-left of the grid, in PDF coords (mm)
	W,H                 float64 // size of the grid, in mm

	MinX,MinY,MaxX,MaxY float64 // the range of values that are scaled onto the grid
	Clip                bool    // skip lines with an end outside the grid

	NoGridlines                    bool
	XGridlineEvery, YGridlineEvery float64 // From Min[XY] to Max[XY]
	XTickFmt,       YTickFmt       string  // Will be passed a float64 via fmt.Sprintf; blank==none

	LineColor []int // rgb, each [0,255]
}

// {{{ bg.U, V, UV

// the bools are whether the coords are out-of-bounds for the grid.
func (bg BaseGrid)U(x float64) (float64, bool) {
	xRatio := (x - bg.MinX) / (bg.MaxX - bg.MinX)
	return bg.OffsetU + xRatio*bg.W, xRatio<0 || xRatio>1
}

// PDF space runs down the page, so V flips y.
func (bg BaseGrid)V(y float64) (float64, bool) {
	yRatio := (y - bg.MinY) / (bg.MaxY - bg.MinY)
	return bg.OffsetV + bg.H - yRatio*bg.H, yRatio<0 || yRatio>1
}

func (bg BaseGrid)UV(x,y float64) (float64, float64, bool) {
	u,oobU := bg.U(x)
	v,oobV := bg.V(y)
	return u, v, (oobU || oobV)
}

// }}}
// {{{ bg.Line, Dot, Label

func (bg BaseGrid)Line(x1,y1,x2,y2 float64) {
	u1,v1,oob1 := bg.UV(x1,y1)
	u2,v2,oob2 := bg.UV(x2,y2)
	if bg.Clip && (oob1 || oob2) { return }

	if len(bg.LineColor) == 3 {
		bg.SetDrawColor(bg.LineColor[0], bg.LineColor[1], bg.LineColor[2])
	}
	bg.Fpdf.Line(u1,v1,u2,v2)
}

// Dot draws a filled circle of radius rMM, in the current fill colour.
func (bg BaseGrid)Dot(x,y,rMM float64) {
	u,v,oob := bg.UV(x,y)
	if bg.Clip && oob { return }
	bg.Circle(u, v, rMM, "F")
}

// Label writes text just to the upper right of (x,y).
func (bg BaseGrid)Label(x,y float64, text string) {
	u,v,_ := bg.UV(x,y)
	bg.Text(u+1.2, v-1.2, text)
}

// }}}
// {{{ bg.DrawGridlines

func (bg BaseGrid)DrawGridlines() {
	bg.SetFont("Arial", "", 7)
	bg.SetTextColor(0,0,0)
	bg.SetLineWidth(0.05)
	bg.SetDrawColor(0xe0, 0xe0, 0xe0)

	if bg.XGridlineEvery > 0 {
		for x := firstTick(bg.MinX, bg.XGridlineEvery); x <= bg.MaxX; x += bg.XGridlineEvery {
			u,_ := bg.U(x)
			if !bg.NoGridlines { bg.Fpdf.Line(u, bg.OffsetV, u, bg.OffsetV+bg.H) }
			if bg.XTickFmt != "" {
				bg.Text(u-3, bg.OffsetV+bg.H+4, fmt.Sprintf(bg.XTickFmt, x))
			}
		}
	}

	if bg.YGridlineEvery > 0 {
		for y := firstTick(bg.MinY, bg.YGridlineEvery); y <= bg.MaxY; y += bg.YGridlineEvery {
			v,_ := bg.V(y)
			if !bg.NoGridlines { bg.Fpdf.Line(bg.OffsetU, v, bg.OffsetU+bg.W, v) }
			if bg.YTickFmt != "" {
				bg.Text(bg.OffsetU+bg.W+1, v+1, fmt.Sprintf(bg.YTickFmt, y))
			}
		}
	}

	bg.SetDrawColor(0,0,0)
	bg.Rect(bg.OffsetU, bg.OffsetV, bg.W, bg.H, "D")
}

// The first multiple of step that is >= min.
func firstTick(min, step float64) float64 {
	return math.Ceil(min/step) * step
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
