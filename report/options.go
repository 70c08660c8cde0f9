package report

import(
	"fmt"
	"strings"
)

// All reports share this same options struct; most reports only look at some of it.
type Options struct {
	Name            string
	ReportLogLevel

	Codes         []string // only rows that involve one of these airports; empty == all
	MinValue        float64  // rows whose main value is below this are skipped
	Limit           int      // max rows; 0 == unlimited
}

func (o Options)String() string {
	return fmt.Sprintf("%s[codes=%s min=%g limit=%d]", o.Name, strings.Join(o.Codes,","),
		o.MinValue, o.Limit)
}

func (o Options)wantsCode(codes ...string) bool {
	if len(o.Codes) == 0 { return true }
	for _,want := range o.Codes {
		for _,c := range codes {
			if strings.EqualFold(want, c) { return true }
		}
	}
	return false
}

func (r *Report)full() bool {
	return r.Options.Limit > 0 && len(r.RowsText) >= r.Options.Limit
}
