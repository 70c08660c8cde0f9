// Package config describes one planning run: where the input data lives, which
// years to calibrate and forecast, the network to derive legs for, and what to
// write out where.
package config

import(
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ap "github.com/gijsvdklink/Airline-planning"
	"github.com/gijsvdklink/Airline-planning/fleet"
)

type Sheet struct {
	Path     string `yaml:"path"`
	Sheet    string `yaml:"sheet,omitempty"`     // xlsx only; blank == first sheet
	SkipRows int    `yaml:"skip_rows,omitempty"` // preamble rows above the header
}

type Data struct {
	Airports  Sheet `yaml:"airports"`
	Economics Sheet `yaml:"economics,omitempty"` // optional; joined to airports by city
	Demand    Sheet `yaml:"demand"`
}

type Model struct {
	BaseYear     int     `yaml:"base_year"`
	ForecastYear int     `yaml:"forecast_year"`
	FuelPrice    float64 `yaml:"fuel_price"`
	DropInvalid  bool    `yaml:"drop_invalid"` // exclude bad observations and refit
}

type Network struct {
	Hub          string  `yaml:"hub"`
	LoadFactor   float64 `yaml:"load_factor"`
	HoursPerDay  float64 `yaml:"hours_per_day"`
	DaysPerWeek  float64 `yaml:"days_per_week"`
	HubTATFactor float64 `yaml:"hub_tat_factor"`
}

type Output struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"` // csv, pdf
	Reports []string `yaml:"reports"` // empty == all
	Plots   bool     `yaml:"plots"`   // network map and fit plot PDFs
}

type Publish struct {
	Project         string `yaml:"project,omitempty"`
	Bucket          string `yaml:"bucket,omitempty"`
	Folder          string `yaml:"folder,omitempty"`
	Dataset         string `yaml:"dataset,omitempty"`
	ForecastTable   string `yaml:"forecast_table,omitempty"`
	LegsTable       string `yaml:"legs_table,omitempty"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// Enabled is true when there is somewhere to publish to.
func (p Publish)Enabled() bool { return p.Bucket != "" || p.Dataset != "" }

type Config struct {
	Data    Data    `yaml:"data"`
	Model   Model   `yaml:"model"`
	Network Network `yaml:"network"`
	Output  Output  `yaml:"output"`
	Publish Publish `yaml:"publish,omitempty"`
}

// Default matches the coursework setup: calibrate on 2020, forecast 2025, hub
// at Frankfurt.
func Default() Config {
	n := fleet.DefaultNetwork("EDDF")
	return Config{
		Data: Data{
			Airports: Sheet{Path:"airports.csv"},
			Demand: Sheet{Path:"demand.csv"},
		},
		Model: Model{
			BaseYear: 2020,
			ForecastYear: 2025,
			FuelPrice: ap.DefaultFuelPrice,
		},
		Network: Network{
			Hub: n.Hub,
			LoadFactor: n.LoadFactor,
			HoursPerDay: n.HoursPerDay,
			DaysPerWeek: n.DaysPerWeek,
			HubTATFactor: n.HubTATFactor,
		},
		Output: Output{
			Dir: "out",
			Formats: []string{"csv"},
		},
	}
}

// Load reads a YAML run file over the defaults, so a file need only say what differs.
func Load(path string) (Config, error) {
	c := Default()
	data,err := os.ReadFile(path)
	if err != nil { return c, errors.Wrap(err, "reading config") }
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "parsing config %s", path)
	}
	return c, c.Validate()
}

func (c Config)Validate() error {
	switch {
	case c.Data.Airports.Path == "":
		return errors.New("config: data.airports.path missing")
	case c.Data.Demand.Path == "":
		return errors.New("config: data.demand.path missing")
	case c.Model.BaseYear <= 0 || c.Model.ForecastYear <= 0:
		return errors.Errorf("config: bad years %d -> %d", c.Model.BaseYear, c.Model.ForecastYear)
	case !(c.Model.FuelPrice > 0):
		return errors.Errorf("config: fuel price %f must be > 0", c.Model.FuelPrice)
	case c.Network.Hub == "":
		return errors.New("config: network.hub missing")
	}
	for _,f := range c.Output.Formats {
		if f != "csv" && f != "pdf" {
			return errors.Errorf("config: output format %q not one of csv, pdf", f)
		}
	}
	if c.Publish.Enabled() && c.Publish.Project == "" && c.Publish.Dataset != "" {
		return errors.New("config: publish.dataset needs publish.project")
	}
	return nil
}

// FleetNetwork converts the network section, filling in the fuel price.
func (c Config)FleetNetwork() fleet.Network {
	return fleet.Network{
		Hub: strings.ToUpper(c.Network.Hub),
		LoadFactor: c.Network.LoadFactor,
		FuelPrice: c.Model.FuelPrice,
		HoursPerDay: c.Network.HoursPerDay,
		DaysPerWeek: c.Network.DaysPerWeek,
		HubTATFactor: c.Network.HubTATFactor,
	}
}

func (c Config)WantsFormat(f string) bool {
	for _,want := range c.Output.Formats {
		if want == f { return true }
	}
	return false
}

func (c Config)String() string {
	b,_ := yaml.Marshal(c)
	return string(b)
}
