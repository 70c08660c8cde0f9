package airplan

import "fmt"

// DomainError reports a coordinate outside the valid range. Latitudes must lie
// within [-90,90], longitudes within [-180,180].
type DomainError struct {
	Location string  // airport code, if known
	Field    string  // "latitude" or "longitude"
	Value    float64
}

func (e *DomainError)Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s %f out of range", e.Location, e.Field, e.Value)
	}
	return fmt.Sprintf("%s %f out of range", e.Field, e.Value)
}

// InvalidObservationError reports an observation that cannot feed a logarithm.
type InvalidObservationError struct {
	Route
	Field    string
	Value    float64
}

func (e *InvalidObservationError)Error() string {
	if e.Route.IsSelf() {
		return fmt.Sprintf("observation %s: self-pair has no demand", e.Route)
	}
	return fmt.Sprintf("observation %s: %s must be > 0 (got %g)", e.Route, e.Field, e.Value)
}

// SingularMatrixError reports a regression that has no unique solution.
type SingularMatrixError struct {
	Observations int
	Reason       string
}

func (e *SingularMatrixError)Error() string {
	return fmt.Sprintf("regression over %d observations is singular: %s", e.Observations, e.Reason)
}
