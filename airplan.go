// This package contains the shared types for the network planner: airports,
// routes, demand matrices and the errors the numerical packages return.
// No I/O here.
package airplan

const(
	// EarthRadiusKM is the sphere radius used for all great-circle distances. Every
	// distance in a planning run must be derived with this same value.
	EarthRadiusKM = 6371.0

	// DefaultFuelPrice is the fuel cost factor (USD/gallon) fed into both the gravity
	// model's cost term and the per-flight fuel cost.
	DefaultFuelPrice = 1.42
)
