package publish

// go test -v github.com/gijsvdklink/Airline-planning/publish

import(
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/skypies/geo"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/fleet"
	"github.com/gijsvdklink/Airline-planning/geodesic"
	"github.com/gijsvdklink/Airline-planning/gravity"
)

func testMatrix(t *testing.T) *geodesic.DistanceMatrix {
	s,err := ap.NewAirportSet(
		ap.Airport{Code:"EHAM", Latlong:geo.Latlong{Lat: 52.3086, Long: 4.7639}},
		ap.Airport{Code:"EDDF", Latlong:geo.Latlong{Lat: 50.0333, Long: 8.5706}},
	)
	if err != nil { t.Fatalf("NewAirportSet: %v", err) }
	dm,err := geodesic.NewDistanceMatrix(s)
	if err != nil { t.Fatalf("NewDistanceMatrix: %v", err) }
	return dm
}

func testRun() Run {
	run := NewRun(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))
	run.BaseYear = 2020
	run.ForecastYear = 2025
	run.Parameters = gravity.Parameters{K:0.004, B1:0.45, B2:0.3, B3:0.8}
	run.FuelPrice = 1.42
	return run
}

func TestForecastRows(t *testing.T) {
	dm := testMatrix(t)
	run := testRun()
	if run.Id != "20250304-050607" { t.Errorf("run id %q", run.Id) }

	base := ap.NewDemandMatrix()
	base.Set(ap.NewRoute("EHAM","EDDF"), 100)
	forecast := ap.NewDemandMatrix()
	forecast.Set(ap.NewRoute("EHAM","EDDF"), 120)
	forecast.Set(ap.NewRoute("EDDF","EHAM"), 90)

	rows := run.ForecastRows(base, forecast, dm)
	if len(rows) != 2 { t.Fatalf("expected 2 rows, got %d", len(rows)) }

	// Sorted by route, so EDDF-EHAM comes first; it has no base demand
	expected := RouteForBigQuery{
		RunId: "20250304-050607",
		RunTime: run.Time,
		Origin: "EDDF",
		Destination: "EHAM",
		DistanceKM: rows[0].DistanceKM,
		BaseYear: 2020,
		BaseDemand: 0,
		ForecastYear: 2025,
		Forecast: 90,
		K: 0.004, B1: 0.45, B2: 0.3, B3: 0.8,
		FuelPrice: 1.42,
	}
	if diff := cmp.Diff(expected, *rows[0]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
	if rows[0].DistanceKM < 366 || rows[0].DistanceKM > 367 {
		t.Errorf("distance %f", rows[0].DistanceKM)
	}
	if rows[1].BaseDemand != 100 || rows[1].Forecast != 120 {
		t.Errorf("EHAM-EDDF row: %s", rows[1])
	}
}

func TestWriteJSONLines(t *testing.T) {
	dm := testMatrix(t)
	run := testRun()
	legs,err := fleet.DefaultNetwork("EDDF").Legs(dm, fleet.DefaultFleet)
	if err != nil { t.Fatalf("Legs: %v", err) }

	buf := bytes.Buffer{}
	n,err := WriteJSONLines(&buf, run.LegRows(legs))
	if err != nil { t.Fatalf("WriteJSONLines: %v", err) }
	if n != 8 { t.Errorf("expected 8 rows, got %d", n) }

	lines := 0
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		row := LegForBigQuery{}
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		if row.RunId != run.Id { t.Errorf("line %d: run id %q", lines, row.RunId) }
		lines++
	}
	if lines != n { t.Errorf("wrote %d rows but %d lines", n, lines) }

	if _,err := WriteJSONLines(&buf, []string{"nope"}); err == nil {
		t.Errorf("expected error for unknown row type")
	}
}

func TestSchemaFor(t *testing.T) {
	schema,err := SchemaFor(RouteForBigQuery{})
	if err != nil { t.Fatalf("SchemaFor: %v", err) }
	if len(schema) != 14 {
		t.Errorf("expected 14 fields, got %d", len(schema))
	}
}

func TestNames(t *testing.T) {
	p := GCSPublisher{Bucket:"plans", Folder:"runs/2025"}
	if got := p.ObjectName("/tmp/out/forecast.csv"); got != "runs/2025/forecast.csv" {
		t.Errorf("object name %q", got)
	}
	if got := p.URI("forecast.json"); got != "gs://plans/runs/2025/forecast.json" {
		t.Errorf("uri %q", got)
	}
}

// These fail before they try to talk to the network.
func TestIncompleteDestinations(t *testing.T) {
	ctx := context.Background()
	if _,err := (GCSPublisher{}).Upload(ctx, "x", "text/plain", &bytes.Buffer{}); err == nil {
		t.Errorf("upload with no bucket should fail")
	}
	if err := (BigQueryPublisher{Project:"p"}).Load(ctx, "gs://x/y"); err == nil {
		t.Errorf("load with no dataset should fail")
	}
	if err := (BigQueryPublisher{Dataset:"d", Table:"t"}).Insert(ctx, nil); err == nil {
		t.Errorf("insert with no project should fail")
	}
}
