package report

import(
	"fmt"
	"sort"
)

// A simple registry of all known reports.
type ReportEntry struct {
	ReportFunc
	SummarizeFunc
	Name, Description string
}

var reportRegistry = map[string]ReportEntry{}

func HandleReport(name string, f ReportFunc, description string) {
	reportRegistry[name] = ReportEntry{
		ReportFunc: f,
		Name: name,
		Description: description,
	}
}
func SummarizeReport(name string, sf SummarizeFunc) {
	entry := reportRegistry[name]
	entry.SummarizeFunc = sf
	reportRegistry[name] = entry
}

func ListReports() []ReportEntry {
	out := []ReportEntry{}

	keys := []string{}
	for k,_ := range reportRegistry { keys = append(keys, k) }
	sort.Strings(keys)

	for _,k := range keys {
		out = append(out, reportRegistry[k])
	}
	return out
}

func InstantiateReport(opt Options) (Report,error) {
	r := BlankReport()
	r.Name = opt.Name
	r.Options = opt

	if entry,exists := reportRegistry[opt.Name]; !exists {
		return r, fmt.Errorf("report '%s' not known", opt.Name)
	} else {
		r.Func = entry.ReportFunc
		r.SummarizeFunc = entry.SummarizeFunc
	}
	return r, nil
}

// Run instantiates the named report and runs it over the inputs.
func Run(opt Options, in *Inputs) (Report, error) {
	r,err := InstantiateReport(opt)
	if err != nil { return r, err }
	err = r.Run(in)
	return r, err
}
