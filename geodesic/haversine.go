// Package geodesic computes great-circle distances between airports.
package geodesic

import(
	"math"

	"github.com/skypies/geo"

	ap "github.com/gijsvdklink/Airline-planning"
)

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// Validate checks a position is a legal lat/long, in decimal degrees. The error
// is a *ap.DomainError; the location is left blank for the caller to fill in.
func Validate(pos geo.Latlong) error {
	if math.IsNaN(pos.Lat) || pos.Lat < -90 || pos.Lat > 90 {
		return &ap.DomainError{Field:"latitude", Value:pos.Lat}
	}
	if math.IsNaN(pos.Long) || pos.Long < -180 || pos.Long > 180 {
		return &ap.DomainError{Field:"longitude", Value:pos.Long}
	}
	return nil
}

// Distance returns the great-circle distance in KM between two points, using
// the haversine formula on a sphere of radius ap.EarthRadiusKM.
func Distance(from, to geo.Latlong) (float64, error) {
	if err := Validate(from); err != nil { return 0, err }
	if err := Validate(to); err != nil { return 0, err }
	return haversine(from, to), nil
}

func haversine(from, to geo.Latlong) float64 {
	lat1,lat2 := radians(from.Lat), radians(to.Lat)
	dLat := lat2 - lat1
	dLong := radians(to.Long) - radians(from.Long)

	sinLat,sinLong := math.Sin(dLat/2), math.Sin(dLong/2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLong*sinLong

	// Rounding can push a a hair outside [0,1], which would NaN the asin.
	a = math.Max(0, math.Min(1, a))

	return 2 * ap.EarthRadiusKM * math.Asin(math.Sqrt(a))
}
