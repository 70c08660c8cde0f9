package airplan

import "fmt"

// A Route is an ordered (origin, destination) pair of airport codes.
type Route struct {
	Origin      string
	Destination string
}

func NewRoute(o,d string) Route { return Route{Origin:o, Destination:d} }

func (r Route)Reverse() Route { return Route{Origin:r.Destination, Destination:r.Origin} }
func (r Route)IsSelf() bool   { return r.Origin == r.Destination }
func (r Route)String() string { return fmt.Sprintf("%s-%s", r.Origin, r.Destination) }

// Involves returns true if the airport is either end of the route.
func (r Route)Involves(code string) bool {
	return r.Origin == code || r.Destination == code
}

type byRoute []Route
func (a byRoute) Len() int           { return len(a) }
func (a byRoute) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byRoute) Less(i, j int) bool {
	if a[i].Origin != a[j].Origin { return a[i].Origin < a[j].Origin }
	return a[i].Destination < a[j].Destination
}
