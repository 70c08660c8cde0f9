// Provides routines to render a planned network, and how well the demand model
// fits it, as PDFs.
package fpdf

import(
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

var (
	BlackRGB = []int{0, 0, 0}
	RedRGB   = []int{0xff, 0, 0}
	BlueRGB  = []int{0, 0, 0xff}
	GreyRGB  = []int{0xa0, 0xa0, 0xa0}

	// http://www.perbang.dk/rgbgradient/
	DemandGradientColors = [][]int{
		{0x00, 0xBF, 0xA9}, // 00BFA9
		{0x00, 0xC2, 0x66}, // 00C266
		{0x00, 0xC5, 0x21}, // 00C521
		{0x25, 0xC9, 0x00}, // 25C900
		{0x6F, 0xCC, 0x00}, // 6FCC00
		{0xBB, 0xD0, 0x00}, // BBD000
		{0xD3, 0x9D, 0x00}, // D39D00
		{0xD7, 0x53, 0x00}, // D75300
		{0xDA, 0x06, 0x00}, // DA0600
		{0xDE, 0x00, 0x48}, // DE0048
	}
)

// fractionToRGB picks a colour from the gradient; f is clamped to [0,1].
func fractionToRGB(f float64) []int {
	if f <= 0 { return DemandGradientColors[0] }
	if f >= 1 { return DemandGradientColors[len(DemandGradientColors)-1] }
	return DemandGradientColors[int(f * float64(len(DemandGradientColors)))]
}

func DrawTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0,0,0)
	pdf.Text(10, 12, title)
}

func DrawCaption(pdf *gofpdf.Fpdf, u,v float64, caption string) {
	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(u,v)
	pdf.MultiCell(0, 4, caption, "", "L", false)
}

// DrawGradientKey labels the colour gradient from min to max.
func DrawGradientKey(pdf *gofpdf.Fpdf, u,v float64, min,max float64, format string) {
	pdf.SetFont("Arial", "", 7)
	n := len(DemandGradientColors)
	for i,rgb := range DemandGradientColors {
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		pdf.Rect(u, v+float64(i)*4, 6, 4, "F")
		val := min + (max-min)*float64(i)/float64(n-1)
		pdf.Text(u+7, v+float64(i)*4+3, fmt.Sprintf(format, val))
	}
}

func write(pdf *gofpdf.Fpdf, w io.Writer) error {
	if err := pdf.Error(); err != nil { return err }
	return pdf.Output(w)
}
