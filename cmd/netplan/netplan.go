// netplan calibrates the gravity demand model on observed demand, forecasts demand
// for a future year, derives leg data for a hub network, and writes reports.
//
//   netplan -config run.yaml
//   netplan -airports airports.xlsx -demand demand.xlsx -year 2025 -formats csv,pdf
package main

import(
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/gijsvdklink/Airline-planning/config"
	"github.com/gijsvdklink/Airline-planning/report"
)

var(
	ctx = context.Background()
	fConfig string
	fAirports, fEconomics, fDemand string
	fSkipRows int
	fHub string
	fBaseYear, fForecastYear int
	fFuelPrice float64
	fOutDir, fFormats, fReports string
	fDropInvalid, fPlots, fPublish, fList bool
)

func init() {
	klog.InitFlags(nil)
	flag.StringVar(&fConfig, "config", "", "YAML run file; flags below override it")
	flag.StringVar(&fAirports, "airports", "", "airports table (.csv or .xlsx)")
	flag.StringVar(&fEconomics, "economics", "", "population/GDP table, joined by city (optional)")
	flag.StringVar(&fDemand, "demand", "", "observed demand table (.csv or .xlsx)")
	flag.IntVar(&fSkipRows, "skiprows", 0, "preamble rows above the header, in all tables")
	flag.StringVar(&fHub, "hub", "", "hub airport code")
	flag.IntVar(&fBaseYear, "base", 0, "year the demand was observed")
	flag.IntVar(&fForecastYear, "year", 0, "year to forecast")
	flag.Float64Var(&fFuelPrice, "fuel", 0, "fuel price, USD/gallon")
	flag.StringVar(&fOutDir, "out", "", "output directory")
	flag.StringVar(&fFormats, "formats", "", "comma separated: csv,pdf")
	flag.StringVar(&fReports, "reports", "", "comma separated report names; blank == all")
	flag.BoolVar(&fDropInvalid, "drop-invalid", false, "drop invalid observations and refit")
	flag.BoolVar(&fPlots, "plots", false, "also write network map and fit plot PDFs")
	flag.BoolVar(&fPublish, "publish", false, "publish to GCS/BigQuery, if configured")
	flag.BoolVar(&fList, "list", false, "list the known reports, and exit")
}

// configFromArgs loads the run file, then applies any flags that were set.
func configFromArgs() (config.Config, error) {
	c := config.Default()
	if fConfig != "" {
		var err error
		if c,err = config.Load(fConfig); err != nil { return c, err }
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "airports":  c.Data.Airports.Path = fAirports
		case "economics": c.Data.Economics.Path = fEconomics
		case "demand":    c.Data.Demand.Path = fDemand
		case "skiprows":
			c.Data.Airports.SkipRows = fSkipRows
			c.Data.Economics.SkipRows = fSkipRows
			c.Data.Demand.SkipRows = fSkipRows
		case "hub":       c.Network.Hub = fHub
		case "base":      c.Model.BaseYear = fBaseYear
		case "year":      c.Model.ForecastYear = fForecastYear
		case "fuel":      c.Model.FuelPrice = fFuelPrice
		case "out":       c.Output.Dir = fOutDir
		case "formats":   c.Output.Formats = splitList(fFormats)
		case "reports":   c.Output.Reports = splitList(fReports)
		case "drop-invalid": c.Model.DropInvalid = fDropInvalid
		case "plots":     c.Output.Plots = fPlots
		}
	})

	return c, c.Validate()
}

func splitList(s string) []string {
	out := []string{}
	for _,v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" { out = append(out, v) }
	}
	return out
}

func main() {
	flag.Parse()
	defer klog.Flush()

	if fList {
		for _,e := range report.ListReports() {
			fmt.Printf("%-14s %s\n", e.Name, e.Description)
		}
		return
	}

	cfg,err := configFromArgs()
	if err != nil { klog.Fatalf("config: %v", err) }
	klog.V(1).Infof("config:-\n%s", cfg)

	tStart := time.Now()
	p,err := newPlan(cfg)
	if err != nil { klog.Fatalf("%v", err) }

	files,err := p.writeOutputs()
	if err != nil { klog.Fatalf("%v", err) }

	if fPublish {
		if !cfg.Publish.Enabled() {
			klog.Warning("-publish given, but nothing to publish to in config")
		} else if err := p.publish(ctx, files, tStart); err != nil {
			klog.Fatalf("publish: %v", err)
		}
	}

	fmt.Printf("%s\n", p.Summary())
	for _,f := range files { fmt.Printf("  wrote %s\n", f) }
	klog.InfoS("netplan: done", "elapsed", time.Since(tStart), "files", len(files))
}
