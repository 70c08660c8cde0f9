package main

import(
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/config"
	"github.com/gijsvdklink/Airline-planning/fleet"
	"github.com/gijsvdklink/Airline-planning/fpdf"
	"github.com/gijsvdklink/Airline-planning/geodesic"
	"github.com/gijsvdklink/Airline-planning/gravity"
	"github.com/gijsvdklink/Airline-planning/loader"
	"github.com/gijsvdklink/Airline-planning/publish"
	"github.com/gijsvdklink/Airline-planning/report"
)

// A plan is one run of the pipeline, from the input tables through to the leg data.
type plan struct {
	cfg      config.Config
	in       report.Inputs
	dropped  []ap.Route // observations excluded before the fit
}

func newPlan(cfg config.Config) (*plan, error) {
	p := &plan{cfg:cfg}
	steps := []struct{ name string; f func() error }{
		{"load", p.load},
		{"calibrate", p.calibrate},
		{"forecast", p.forecast},
		{"legs", p.legs},
	}
	for _,step := range steps {
		tStart := time.Now()
		if err := step.f(); err != nil { return nil, errors.Wrap(err, step.name) }
		klog.V(1).InfoS("netplan: step done", "step", step.name, "elapsed", time.Since(tStart))
	}
	return p, nil
}

func openTable(s config.Sheet) (loader.Table, error) {
	return loader.OpenTable(s.Path, loader.TableOptions{Sheet:s.Sheet, SkipRows:s.SkipRows})
}

// {{{ p.load

func (p *plan)load() error {
	t,err := openTable(p.cfg.Data.Airports)
	if err != nil { return err }
	airports,err := loader.ReadAirports(t)
	if err != nil { return err }

	if p.cfg.Data.Economics.Path != "" {
		et,err := openTable(p.cfg.Data.Economics)
		if err != nil { return err }
		econ,err := loader.ReadEconomics(et)
		if err != nil { return err }
		if airports,err = loader.ApplyEconomics(airports, econ); err != nil { return err }
	}

	dt,err := openTable(p.cfg.Data.Demand)
	if err != nil { return err }
	demand,err := loader.ReadDemand(dt)
	if err != nil { return err }

	dm,err := geodesic.NewDistanceMatrix(airports)
	if err != nil { return err }

	p.in = report.Inputs{
		Airports: airports,
		Distances: dm,
		BaseYear: p.cfg.Model.BaseYear,
		Demand: demand,
		ForecastYear: p.cfg.Model.ForecastYear,
		Network: p.cfg.FleetNetwork(),
	}
	klog.InfoS("netplan: loaded", "airports", airports.Len(), "routes", len(demand))
	return nil
}

// }}}
// {{{ p.calibrate

// With DropInvalid set, each invalid observation is taken out of the demand
// matrix and the fit retried; otherwise the first one is fatal.
func (p *plan)calibrate() error {
	demand := p.in.Demand
	observer := gravity.KlogObserver(2)

	for {
		reg,err := p.fit(demand, observer)
		if err == nil {
			p.in.Regression = reg
			return nil
		}

		var ioe *ap.InvalidObservationError
		if !p.cfg.Model.DropInvalid || !errors.As(err, &ioe) { return err }

		klog.Warningf("dropping observation: %v", ioe)
		p.dropped = append(p.dropped, ioe.Route)
		demand = demand.Without(ioe.Route)
	}
}

func (p *plan)fit(demand ap.DemandMatrix, observer gravity.Observer) (*gravity.Regression, error) {
	obs,err := gravity.BuildObservations(p.in.Airports, demand, p.in.Distances, p.cfg.Model.BaseYear,
		p.cfg.Model.FuelPrice)
	if err != nil { return nil, err }
	return gravity.Fit(obs, observer)
}

// }}}

func (p *plan)forecast() error {
	f := gravity.NewForecaster(p.in.Regression.Parameters(), p.cfg.Model.FuelPrice)
	forecast,err := f.ForecastMatrix(p.in.Airports, p.in.Distances, p.cfg.Model.ForecastYear)
	if err != nil { return err }
	p.in.Forecast = forecast
	return nil
}

func (p *plan)legs() error {
	legs,err := p.in.Network.Legs(p.in.Distances, fleet.DefaultFleet)
	if err != nil { return err }
	p.in.Legs = legs
	return nil
}

func (p *plan)Summary() string {
	reg := p.in.Regression
	str := fmt.Sprintf("%d airports, %d observations (%d dropped), R^2=%.4f\n", p.in.Airports.Len(),
		reg.N(), len(p.dropped), reg.RSquared)
	str += fmt.Sprintf("parameters: %s\n", reg.Parameters())
	str += fmt.Sprintf("forecast %d: %d routes, total %.0f", p.in.ForecastYear, len(p.in.Forecast),
		p.in.Forecast.Total())
	return str
}

// {{{ p.writeOutputs

func (p *plan)reportNames() []string {
	if len(p.cfg.Output.Reports) > 0 { return p.cfg.Output.Reports }
	names := []string{}
	for _,e := range report.ListReports() { names = append(names, e.Name) }
	return names
}

// writeOutputs runs the reports and writes them, and the plots, into the output dir.
func (p *plan)writeOutputs() ([]string, error) {
	dir := p.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil { return nil, errors.Wrap(err, "output dir") }

	files := []string{}
	writeFile := func(name string, write func(*os.File) error) error {
		path := filepath.Join(dir, name)
		fh,err := os.Create(path)
		if err != nil { return err }
		if err := write(fh); err != nil {
			fh.Close()
			return errors.Wrapf(err, "writing %s", path)
		}
		if err := fh.Close(); err != nil { return err }
		files = append(files, path)
		return nil
	}

	for _,name := range p.reportNames() {
		r,err := report.Run(report.Options{Name:name, ReportLogLevel:report.INFO}, &p.in)
		if err != nil { return files, err }
		klog.V(2).Infof("report %s:-\n%s", name, r.Log)

		if p.cfg.WantsFormat("csv") {
			err = writeFile(name+".csv", func(fh *os.File) error { return r.OutputAsCSV(fh) })
			if err != nil { return files, err }
		}
		if p.cfg.WantsFormat("pdf") {
			err = writeFile(name+".pdf", func(fh *os.File) error { return r.OutputAsPDF(fh) })
			if err != nil { return files, err }
		}
	}

	if p.cfg.Output.Plots {
		title := fmt.Sprintf("Forecast demand %d, hub %s", p.in.ForecastYear, p.in.Network.Hub)
		err := writeFile("network-map.pdf", func(fh *os.File) error {
			return fpdf.WriteNetworkMap(fh, title, p.in.Airports, p.in.Forecast, p.in.Network.Hub)
		})
		if err != nil { return files, err }

		title = fmt.Sprintf("Gravity model fit, %d", p.in.BaseYear)
		err = writeFile("fit.pdf", func(fh *os.File) error {
			return fpdf.WriteFitPlot(fh, title, p.in.Regression)
		})
		if err != nil { return files, err }
	}

	return files, nil
}

// }}}
// {{{ p.publish

func contentType(path string) string {
	switch filepath.Ext(path) {
	case ".csv": return "text/csv"
	case ".pdf": return "application/pdf"
	}
	return "application/octet-stream"
}

// publish uploads the output files, then loads the forecast and leg rows into
// BigQuery; via GCS if there is a bucket, else by streaming inserts.
func (p *plan)publish(ctx context.Context, files []string, t time.Time) error {
	pc := p.cfg.Publish

	run := publish.NewRun(t)
	run.BaseYear = p.in.BaseYear
	run.ForecastYear = p.in.ForecastYear
	run.Parameters = p.in.Regression.Parameters()
	run.FuelPrice = p.cfg.Model.FuelPrice

	forecastRows := run.ForecastRows(p.in.Demand, p.in.Forecast, p.in.Distances)
	legRows := run.LegRows(p.in.Legs)

	gcs := publish.GCSPublisher{Bucket:pc.Bucket, Folder:filepath.Join(pc.Folder, run.Id),
		CredentialsFile:pc.CredentialsFile}

	if pc.Bucket != "" {
		for _,path := range files {
			fh,err := os.Open(path)
			if err != nil { return err }
			_,err = gcs.Upload(ctx, path, contentType(path), fh)
			fh.Close()
			if err != nil { return err }
		}
		if _,err := gcs.UploadJSONLines(ctx, "forecast.json", forecastRows); err != nil { return err }
		if _,err := gcs.UploadJSONLines(ctx, "legs.json", legRows); err != nil { return err }
		klog.InfoS("netplan: uploaded", "dest", gcs.URI(""), "files", len(files)+2)
	}

	tables := []struct{ table, file string; rows interface{} }{
		{pc.ForecastTable, "forecast.json", forecastRows},
		{pc.LegsTable, "legs.json", legRows},
	}
	for _,tb := range tables {
		if pc.Dataset == "" || tb.table == "" { continue }
		bq := publish.BigQueryPublisher{Project:pc.Project, Dataset:pc.Dataset, Table:tb.table,
			CredentialsFile:pc.CredentialsFile}

		var err error
		if pc.Bucket != "" {
			err = bq.Load(ctx, gcs.URI(tb.file))
		} else {
			err = bq.Insert(ctx, tb.rows)
		}
		if err != nil { return err }
		klog.InfoS("netplan: published", "table", bq.String(), "run", run.Id)
	}

	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
