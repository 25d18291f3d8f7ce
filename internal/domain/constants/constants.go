// Package constants holds values shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Review event kinds carried in ReviewEvent.Kind and the "event" attribute.
const (
	ReviewEventSubmitted = "review.submitted"
	ReviewEventUpdated   = "review.updated"
	ReviewEventDeleted   = "review.deleted"
)
