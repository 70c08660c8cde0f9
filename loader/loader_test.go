package loader

// go test -v github.com/gijsvdklink/Airline-planning/loader

import(
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	ap "github.com/gijsvdklink/Airline-planning"
)

var airportsCSV = `Group 16 network data,,,,
generated for the planning exercise,,,,
Code,City,Latitude,Longitude,Population_2020,Population_2023,GDP_2020,GDP_2023
EHAM,Amsterdam,52.3086,4.7639,"1,100,000",1150000,52000,55000
eddf,Frankfurt,50.0333,8.5706,760000,775000,61000,63000
LIRF,Rome,41.8003,12.2389,2800000,2750000,38000,39000,,
`

func TestReadAirportsCSV(t *testing.T) {
	tab,err := ReadCSV(strings.NewReader(airportsCSV), TableOptions{SkipRows:2})
	if err != nil { t.Fatalf("ReadCSV: %v", err) }

	s,err := ReadAirports(tab)
	if err != nil { t.Fatalf("ReadAirports: %v", err) }

	if diff := cmp.Diff([]string{"EHAM","EDDF","LIRF"}, s.Codes()); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}

	ams,_ := s.Lookup("EHAM")
	if ams.City != "Amsterdam" || ams.Lat != 52.3086 || ams.Long != 4.7639 {
		t.Errorf("EHAM parsed wrong: %+v", ams)
	}
	want := map[int]float64{2020:1100000, 2023:1150000}
	if diff := cmp.Diff(want, ams.PopulationByYear); diff != "" {
		t.Errorf("population (-want +got):\n%s", diff)
	}
	if ams.GDPByYear[2023] != 55000 {
		t.Errorf("GDP 2023: %v", ams.GDPByYear)
	}
}

func TestReadAirportsErrors(t *testing.T) {
	tests := []string{
		"City,Latitude,Longitude\nAmsterdam,52,4\n",         // no code column
		"Code,Latitude,Longitude\nEHAM,north,4\n",            // bad lat
		"Code,Latitude,Longitude\nEHAM,52,4\nEHAM,52,4\n",    // duplicate
		"Code,Latitude,Longitude,GDP_2020\nEHAM,52,4,lots\n", // bad number
		"Code,Latitude,Longitude\nEHAM,52,4,extra\n",         // overflow
	}
	for i,csv := range tests {
		tab,err := ReadCSV(strings.NewReader(csv), TableOptions{})
		if err == nil {
			_,err = ReadAirports(tab)
		}
		if err == nil {
			t.Errorf("[%d] expected an error for %q", i, csv)
		}
	}
}

func TestTableRow(t *testing.T) {
	tab := Table{
		Name: "t",
		Headers: []string{"Code", "Lat", "Code"},
		Rows: [][]string{{"EHAM", "52.3", "ignored"}},
	}
	if diff := cmp.Diff(Row{"Code":"EHAM", "Lat":"52.3"}, tab.Row(0)); diff != "" {
		t.Errorf("Row (-want +got):\n%s", diff)
	}
}

// Columns are found by header, wherever they sit in the row.
func TestReadAirportsColumnOrder(t *testing.T) {
	csv := "gdp 2023,Lon,Name,ICAO,Lat\n55000,4.7639,Amsterdam,EHAM,52.3086\n"
	tab,err := ReadCSV(strings.NewReader(csv), TableOptions{})
	if err != nil { t.Fatalf("ReadCSV: %v", err) }

	s,err := ReadAirports(tab)
	if err != nil { t.Fatalf("ReadAirports: %v", err) }
	a,_ := s.Lookup("EHAM")
	if a.City != "Amsterdam" || a.Lat != 52.3086 || a.Long != 4.7639 || a.GDPByYear[2023] != 55000 {
		t.Errorf("wrong airport: %+v", a)
	}
}

func TestApplyEconomics(t *testing.T) {
	tab,_ := ReadCSV(strings.NewReader("Code,City,Lat,Lon,Population_2023\n"+
		"EHAM,Amsterdam,52.3,4.76,999\nEDDF,Frankfurt,50.0,8.57,\n"), TableOptions{})
	s,err := ReadAirports(tab)
	if err != nil { t.Fatalf("ReadAirports: %v", err) }

	econTab,_ := ReadCSV(strings.NewReader("City,Population_2020,Population_2023,GDP_2020\n"+
		"Amsterdam,1100000,1150000,52000\nFrankfurt,760000,775000,61000\n"), TableOptions{})
	econ,err := ReadEconomics(econTab)
	if err != nil { t.Fatalf("ReadEconomics: %v", err) }

	merged,err := ApplyEconomics(s, econ)
	if err != nil { t.Fatalf("ApplyEconomics: %v", err) }

	ams,_ := merged.Lookup("EHAM")
	if ams.PopulationByYear[2020] != 1100000 || ams.PopulationByYear[2023] != 999 {
		t.Errorf("EHAM merge wrong: %v", ams.PopulationByYear)
	}
	fra,_ := merged.Lookup("EDDF")
	if fra.PopulationByYear[2023] != 775000 || fra.GDPByYear[2020] != 61000 {
		t.Errorf("EDDF merge wrong: %v %v", fra.PopulationByYear, fra.GDPByYear)
	}

	delete(econ, "Frankfurt")
	if _,err := ApplyEconomics(s, econ); err == nil {
		t.Errorf("expected error for missing city")
	}
}

func TestReadDemandMatrix(t *testing.T) {
	csv := ",EHAM,EDDF,LIRF\nEHAM,,120,80\nEDDF,110,0,60\nLIRF,75,55,\n,,,\n"
	tab,err := ReadCSV(strings.NewReader(csv), TableOptions{})
	if err != nil { t.Fatalf("ReadCSV: %v", err) }

	dm,err := ReadDemand(tab)
	if err != nil { t.Fatalf("ReadDemand: %v", err) }

	want := ap.DemandMatrix{
		ap.NewRoute("EHAM","EDDF"): 120, ap.NewRoute("EHAM","LIRF"): 80,
		ap.NewRoute("EDDF","EHAM"): 110, ap.NewRoute("EDDF","LIRF"): 60,
		ap.NewRoute("LIRF","EHAM"): 75,  ap.NewRoute("LIRF","EDDF"): 55,
	}
	if diff := cmp.Diff(want, dm); diff != "" {
		t.Errorf("demand (-want +got):\n%s", diff)
	}

	// Missing off-diagonal cell
	tab,_ = ReadCSV(strings.NewReader(",EHAM,EDDF\nEHAM,,\nEDDF,10,\n"), TableOptions{})
	if _,err := ReadDemand(tab); err == nil {
		t.Errorf("expected error for blank off-diagonal cell")
	}
}

func TestReadDemandLong(t *testing.T) {
	csv := "Origin,Destination,Demand_2020\nEHAM,EDDF,120\nEDDF,EHAM,\"1,110\"\nEHAM,EHAM,5\n"
	tab,_ := ReadCSV(strings.NewReader(csv), TableOptions{})
	dm,err := ReadDemand(tab)
	if err != nil { t.Fatalf("ReadDemand: %v", err) }

	want := ap.DemandMatrix{ap.NewRoute("EHAM","EDDF"): 120, ap.NewRoute("EDDF","EHAM"): 1110}
	if diff := cmp.Diff(want, dm); diff != "" {
		t.Errorf("demand (-want +got):\n%s", diff)
	}

	tab,_ = ReadCSV(strings.NewReader("Origin,Destination,Demand\nEHAM,EDDF,1\nEHAM,EDDF,2\n"),
		TableOptions{})
	if _,err := ReadDemand(tab); err == nil {
		t.Errorf("expected error for duplicate route")
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Demand per week"},
		{"trips, both directions listed separately"},
		{"", "EHAM", "EDDF"},
		{"EHAM", "", 120},
		{"EDDF", 110.5, ""},
	}
	for i,row := range rows {
		cell,_ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf,err := f.WriteToBuffer()
	if err != nil { t.Fatalf("WriteToBuffer: %v", err) }

	tab,err := ReadXLSX(buf, TableOptions{SkipRows:2})
	if err != nil { t.Fatalf("ReadXLSX: %v", err) }

	if diff := cmp.Diff([]string{"","EHAM","EDDF"}, tab.Headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}

	dm,err := ReadDemand(tab)
	if err != nil { t.Fatalf("ReadDemand: %v", err) }
	if dm[ap.NewRoute("EHAM","EDDF")] != 120 || dm[ap.NewRoute("EDDF","EHAM")] != 110.5 {
		t.Errorf("demand wrong: %v", dm)
	}

	if _,err := ReadXLSX(strings.NewReader("not a zip"), TableOptions{}); err == nil {
		t.Errorf("expected error for junk input")
	}
}

func xlsxBuffer(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()
	for i,row := range rows {
		cell,_ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf,err := f.WriteToBuffer()
	if err != nil { t.Fatalf("WriteToBuffer: %v", err) }
	return buf
}

// XLSX rows wider than the header follow the CSV rule.
func TestReadXLSXOverflow(t *testing.T) {
	header := []interface{}{"Code", "Latitude", "Longitude"}

	buf := xlsxBuffer(t, [][]interface{}{header, {"EHAM", 52, 4, 999}})
	_,err := ReadXLSX(buf, TableOptions{})
	if err == nil {
		t.Fatalf("expected an error for a value beyond the header")
	}
	if !strings.Contains(err.Error(), "row 2") || !strings.Contains(err.Error(), "column D") {
		t.Errorf("error should name row and column: %v", err)
	}

	_,err = ReadCSV(strings.NewReader("Code,Latitude,Longitude\nEHAM,52,4,999\n"), TableOptions{})
	if err == nil {
		t.Errorf("CSV should reject the same row")
	}

	buf = xlsxBuffer(t, [][]interface{}{header, {"EHAM", 52, 4, ""}, {"EDDF", 50, 8}})
	tab,err := ReadXLSX(buf, TableOptions{})
	if err != nil { t.Fatalf("blank overflow: %v", err) }
	want := [][]string{{"EHAM","52","4"}, {"EDDF","50","8"}}
	if diff := cmp.Diff(want, tab.Rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}
