package loader

import(
	"strings"

	"github.com/pkg/errors"

	ap "github.com/gijsvdklink/Airline-planning"
)

// {{{ ReadDemand

// ReadDemand reads weekly demand, in one of two layouts:
//
// Long form, one route per row, with columns Origin, Destination and Demand (or
// any column whose name starts with "Demand", e.g. Demand_2020).
//
// Matrix form: the header row is a corner cell followed by destination codes;
// each row is an origin code followed by the demand to each destination. The
// diagonal is ignored. Empty off-diagonal cells are an error, rather than being
// taken as zero.
func ReadDemand(t Table) (ap.DemandMatrix, error) {
	origCol,hasOrig := t.Column("Origin", "From")
	destCol,hasDest := t.Column("Destination", "To")
	if hasOrig && hasDest {
		demandCol := -1
		for i,h := range t.Headers {
			if strings.HasPrefix(strings.ToLower(h), "demand") { demandCol = i; break }
		}
		if demandCol < 0 { return nil, errors.Errorf("%s: no demand column", t.Name) }
		return readDemandLong(t, origCol, destCol, demandCol)
	}

	return readDemandMatrix(t)
}

// }}}
// {{{ readDemandLong

func readDemandLong(t Table, origCol, destCol, demandCol int) (ap.DemandMatrix, error) {
	dm := ap.NewDemandMatrix()

	for i,row := range t.Rows {
		r := ap.NewRoute(strings.ToUpper(row[origCol]), strings.ToUpper(row[destCol]))
		if r.Origin == "" || r.Destination == "" {
			return nil, errors.Errorf("%s row %d: missing origin or destination", t.Name, i+1)
		}
		if r.IsSelf() { continue }
		if _,exists := dm[r]; exists {
			return nil, errors.Errorf("%s row %d: route %s listed twice", t.Name, i+1, r)
		}

		v,err := parseNumber(row[demandCol])
		if err != nil {
			return nil, errors.Errorf("%s row %d (%s): bad demand %q", t.Name, i+1, r, row[demandCol])
		}
		dm.Set(r, v)
	}

	return dm, nil
}

// }}}
// {{{ readDemandMatrix

func readDemandMatrix(t Table) (ap.DemandMatrix, error) {
	if len(t.Headers) < 2 {
		return nil, errors.Errorf("%s: demand matrix needs destination columns", t.Name)
	}
	dests := []string{}
	for _,h := range t.Headers[1:] {
		if h == "" { return nil, errors.Errorf("%s: blank destination code in header", t.Name) }
		dests = append(dests, strings.ToUpper(h))
	}

	dm := ap.NewDemandMatrix()
	seen := map[string]bool{}

	for i,row := range t.Rows {
		orig := strings.ToUpper(row[0])
		if orig == "" { return nil, errors.Errorf("%s row %d: blank origin code", t.Name, i+1) }
		if seen[orig] { return nil, errors.Errorf("%s row %d: origin %s listed twice", t.Name, i+1, orig) }
		seen[orig] = true

		for j,dest := range dests {
			if orig == dest { continue }
			cell := row[j+1]
			if cell == "" {
				return nil, errors.Errorf("%s row %d: no demand for %s-%s", t.Name, i+1, orig, dest)
			}
			v,err := parseNumber(cell)
			if err != nil {
				return nil, errors.Errorf("%s row %d: bad demand %q for %s-%s", t.Name, i+1, cell, orig, dest)
			}
			dm.Set(ap.NewRoute(orig,dest), v)
		}
	}

	return dm, nil
}

// }}}
