// Package publish ships the results of a planning run to Google Cloud: report
// files into Cloud Storage, and forecast rows into BigQuery for analysis.
package publish

import(
	"encoding/json"
	"fmt"
	"io"
	"time"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/fleet"
	"github.com/gijsvdklink/Airline-planning/geodesic"
	"github.com/gijsvdklink/Airline-planning/gravity"
)

// RouteForBigQuery is a denormalized forecast for one route, with the model
// parameters that produced it, so runs can be compared in SQL.
type RouteForBigQuery struct {
	RunId          string
	RunTime        time.Time

	Origin         string
	Destination    string
	DistanceKM     float64

	BaseYear       int
	BaseDemand     float64 // zero if the route had no observed demand
	ForecastYear   int
	Forecast       float64

	K,B1,B2,B3     float64
	FuelPrice      float64
}

func (r RouteForBigQuery)String() string {
	return fmt.Sprintf("%s %s-%s %.0fkm %d:%.1f -> %d:%.1f", r.RunId, r.Origin, r.Destination,
		r.DistanceKM, r.BaseYear, r.BaseDemand, r.ForecastYear, r.Forecast)
}

// LegForBigQuery is one row of per-leg operating data.
type LegForBigQuery struct {
	RunId            string
	RunTime          time.Time

	Origin           string
	Destination      string
	Aircraft         string
	DistanceKM       float64
	Feasible         bool
	BlockHours       float64
	MaxWeeklyFlights int
	CostPerFlight    float64
	RevenuePerFlight float64
}

type Run struct {
	Id            string
	Time          time.Time
	BaseYear      int
	ForecastYear  int
	Parameters    gravity.Parameters
	FuelPrice     float64
}

// NewRun names a run after its start time.
func NewRun(t time.Time) Run {
	return Run{Id: t.UTC().Format("20060102-150405"), Time: t.UTC()}
}

// ForecastRows flattens a forecast; routes come out in sorted order.
func (run Run)ForecastRows(base, forecast ap.DemandMatrix, dm *geodesic.DistanceMatrix) []*RouteForBigQuery {
	out := []*RouteForBigQuery{}
	for _,r := range forecast.Routes() {
		f,_ := forecast.Get(r)
		b,_ := base.Get(r)
		km,_ := dm.RouteDistance(r)
		out = append(out, &RouteForBigQuery{
			RunId: run.Id,
			RunTime: run.Time,
			Origin: r.Origin,
			Destination: r.Destination,
			DistanceKM: km,
			BaseYear: run.BaseYear,
			BaseDemand: b,
			ForecastYear: run.ForecastYear,
			Forecast: f,
			K: run.Parameters.K,
			B1: run.Parameters.B1,
			B2: run.Parameters.B2,
			B3: run.Parameters.B3,
			FuelPrice: run.FuelPrice,
		})
	}
	return out
}

func (run Run)LegRows(legs []fleet.Leg) []*LegForBigQuery {
	out := []*LegForBigQuery{}
	for _,l := range legs {
		out = append(out, &LegForBigQuery{
			RunId: run.Id,
			RunTime: run.Time,
			Origin: l.Origin,
			Destination: l.Destination,
			Aircraft: l.Aircraft,
			DistanceKM: l.DistanceKM,
			Feasible: l.Feasible,
			BlockHours: l.BlockHours,
			MaxWeeklyFlights: l.MaxWeeklyFlights,
			CostPerFlight: l.CostPerFlight,
			RevenuePerFlight: l.RevenuePerFlight,
		})
	}
	return out
}

// WriteJSONLines writes one JSON object per line, the format BigQuery loads from GCS.
func WriteJSONLines(w io.Writer, rows interface{}) (int, error) {
	encoder := json.NewEncoder(w)
	n := 0
	switch v := rows.(type) {
	case []*RouteForBigQuery:
		for _,row := range v {
			if err := encoder.Encode(row); err != nil { return n, err }
			n++
		}
	case []*LegForBigQuery:
		for _,row := range v {
			if err := encoder.Encode(row); err != nil { return n, err }
			n++
		}
	default:
		return 0, fmt.Errorf("WriteJSONLines: can't handle %T", rows)
	}
	return n, nil
}
