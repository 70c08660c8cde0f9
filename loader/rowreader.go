package loader

import(
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// RowReader turns CSV input into rows as wide as the header row. The header row is the
// first row after SkipRows preamble rows; spreadsheet exports often carry a few
// lines of titles and notes above it.
type RowReader struct {
	csvreader  *csv.Reader
	headers   []string
	line        int
	err         error
}

func NewRowReader(ioreader io.Reader, skipRows int) *RowReader {
	rdr := RowReader{
		csvreader: csv.NewReader(ioreader),
	}
	rdr.csvreader.FieldsPerRecord = -1 // preambles and trailing blanks are ragged
	rdr.csvreader.TrimLeadingSpace = true

	for i := 0; i < skipRows; i++ {
		if _,err := rdr.csvreader.Read(); err != nil {
			rdr.err = errors.Wrapf(err, "skipping preamble row %d", i+1)
			return &rdr
		}
		rdr.line++
	}

	headers,err := rdr.csvreader.Read()
	if err != nil {
		rdr.err = errors.Wrap(err, "reading header row")
		return &rdr
	}
	rdr.line++
	rdr.headers = trimAll(headers)
	return &rdr
}

func (r *RowReader)Headers() []string { return r.headers }

// Line is the (1-based) line number of the most recently read row.
func (r *RowReader)Line() int { return r.line }

// {{{ rdr.ReadValues

// ReadValues returns the next row's cells, padded out to the width of the header.
// Returns io.EOF at the end.
func (r *RowReader)ReadValues() ([]string, error) {
	if r.err != nil { return nil, r.err }

	vals,err := r.csvreader.Read()
	if err != nil { return nil, err }
	r.line++

	if len(vals) > len(r.headers) {
		// Allow blank overflow (trailing commas); anything else is a mismatch
		for _,v := range vals[len(r.headers):] {
			if strings.TrimSpace(v) != "" {
				return nil, errors.Errorf("line %d: header/val mismatch (%d/%d)", r.line,
					len(r.headers), len(vals))
			}
		}
		vals = vals[:len(r.headers)]
	}
	for len(vals) < len(r.headers) {
		vals = append(vals, "")
	}

	return trimAll(vals), nil
}

// }}}


func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i,s := range in { out[i] = strings.TrimSpace(s) }
	return out
}
