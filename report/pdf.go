package report

import(
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

var(
	PageW = 277.0 // landscape A4, inside 10mm margins
	RowH  = 5.0
)

// OutputAsPDF writes the rows as a paginated table, followed by the metadata.
func (r *Report)OutputAsPDF(w io.Writer) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)

	header := func() {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(0xe0, 0xe0, 0xe0)
		colW := columnWidth(len(r.HeadersText))
		for _,h := range r.HeadersText {
			pdf.CellFormat(colW, RowH, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(0, RowH, fmt.Sprintf("report: %s", r.Name), "", 1, "L", false, 0, "")
		if len(r.HeadersText) > 0 { header() }
	})

	pdf.AddPage()

	colW := columnWidth(len(r.HeadersText))
	for _,row := range r.RowsText {
		for i,col := range row {
			align := "R"
			if i == 0 { align = "L" }
			pdf.CellFormat(colW, RowH, col, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(RowH)
	pdf.SetFont("Arial", "", 8)
	for _,kv := range r.MetadataTable() {
		pdf.CellFormat(80, RowH, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, RowH, kv[1], "", 1, "R", false, 0, "")
	}

	return pdf.Output(w)
}

func columnWidth(n int) float64 {
	if n == 0 { return PageW }
	return PageW / float64(n)
}
