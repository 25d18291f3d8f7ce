// Package usecase declares the application's use cases. Implementations live in impl.
package usecase

// NearbyInput describes a radius search around a point.
type NearbyInput struct {
	Latitude  float64
	Longitude float64
	// RadiusKm defaults to the configured radius when nil.
	RadiusKm *float64
	// Category filters vendors by exact, case-sensitive equality.
	Category *string
}
