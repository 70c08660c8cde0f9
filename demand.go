package airplan

import(
	"fmt"
	"sort"
)

// DemandMatrix holds weekly passenger trips per ordered route. Self-routes are
// never stored; a route that is absent was simply not observed.
type DemandMatrix map[Route]float64

func NewDemandMatrix() DemandMatrix { return DemandMatrix{} }

// Set ignores self-routes.
func (dm DemandMatrix)Set(r Route, trips float64) {
	if r.IsSelf() { return }
	dm[r] = trips
}

func (dm DemandMatrix)Get(r Route) (float64, bool) {
	v,exists := dm[r]
	return v,exists
}

// Routes returns all routes, sorted by origin then destination.
func (dm DemandMatrix)Routes() []Route {
	out := []Route{}
	for r,_ := range dm { out = append(out, r) }
	sort.Sort(byRoute(out))
	return out
}

func (dm DemandMatrix)Total() float64 {
	total := 0.0
	for _,v := range dm { total += v }
	return total
}

// Without returns a copy of the matrix, minus the given routes.
func (dm DemandMatrix)Without(routes ...Route) DemandMatrix {
	drop := map[Route]bool{}
	for _,r := range routes { drop[r] = true }

	out := DemandMatrix{}
	for r,v := range dm {
		if !drop[r] { out[r] = v }
	}
	return out
}

func (dm DemandMatrix)String() string {
	str := fmt.Sprintf("--- demand matrix (%d routes, %.0f trips/week) ---\n", len(dm), dm.Total())
	for _,r := range dm.Routes() {
		str += fmt.Sprintf(" %-11s %10.1f\n", r, dm[r])
	}
	return str
}
