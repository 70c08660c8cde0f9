// Package report renders the results of a planning run as tables: one row per
// airport pair, route or leg, written out as CSV or PDF.
package report

import(
	"fmt"
	"sort"
	"time"

	"github.com/skypies/util/histogram"
)

type ReportFunc func(*Report, *Inputs) error
type SummarizeFunc func(*Report)

type ReportLogLevel int
const(
	DEBUG = iota
	INFO
)

type Report struct {
	Name              string
	Options           // embedded
	Func              ReportFunc
	SummarizeFunc     // embedded, but just to avoid a more confusing name

	// Output state
	HeadersText []string
	RowsText  [][]string

	I         map[string]int
	F         map[string]float64
	S         map[string]string
	H         histogram.Histogram

	Stats histogram.Set // internal performance counters
	Log string
}

func BlankReport() Report {
	return Report{
		I: map[string]int{},
		F: map[string]float64{},
		S: map[string]string{},
		RowsText: [][]string{},
		HeadersText: []string{},
		H: histogram.Histogram{ValMin:0, ValMax:1000, NumBuckets:20},
		Stats: histogram.NewSet(40000),  // maxval, in micros; 40ms == 40000us
	}
}

func (r *Report)Logger(level ReportLogLevel, s string) {
	if level < r.Options.ReportLogLevel { return }
	r.Log += s
}
func (r *Report)Infof(s string,args ...interface{}) { r.Logger(INFO, fmt.Sprintf(s,args...)) }
func (r *Report)Debugf(s string,args ...interface{}) { r.Logger(DEBUG, fmt.Sprintf(s,args...)) }

func (r *Report)SetHeaders(headers ...string) {
	if len(r.HeadersText) == 0 { r.HeadersText = headers }
}
func (r *Report)AddRow(cols ...string) {
	r.RowsText = append(r.RowsText, cols)
}

// Run fills in the report from the inputs, then summarizes it.
func (r *Report)Run(in *Inputs) error {
	if r.Func == nil { return fmt.Errorf("report '%s' has no report func", r.Name) }
	if err := in.Check(r.Name); err != nil { return err }

	tStart := time.Now()
	err := r.Func(r, in)
	r.Stats.RecordValue("run", time.Since(tStart).Nanoseconds()/1000)
	if err != nil { return err }

	r.I["[A] rows"] = len(r.RowsText)
	r.FinishSummary()
	return nil
}

func (r *Report)FinishSummary() {
	r.Info("**** Stage: all done\n")
	if r.SummarizeFunc != nil { r.SummarizeFunc(r) }
	r.Infof("Stats (in micros):-\n%v", r.Stats)
}
func (r *Report)Info(s string) { r.Infof("%s", s) }

// MetadataTable flattens the counters and histogram stats into sorted key/value rows.
func (r *Report)MetadataTable() [][]string {
	all := map[string]string{}

	for k,v := range r.I { all[k] = fmt.Sprintf("%d", v) }
	for k,v := range r.F { all[k] = fmt.Sprintf("%.4g", v) }
	for k,v := range r.S { all[k] = v }

	if stats,valid := r.H.Stats(); valid {
		all["[Z] stats, N"] = fmt.Sprintf("%d", stats.N)
		all["[Z] stats, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Z] stats, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
	}

	keys := []string{}
	for k,_ := range all { keys = append(keys, k) }
	sort.Strings(keys)

	out := [][]string{}
	for _,k := range keys {
		out = append(out, []string{k, all[k]})
	}
	return out
}
