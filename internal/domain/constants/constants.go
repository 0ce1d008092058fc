// Package constants holds values shared across layers that have no better home.
package constants

const (
	// EnvDevelop is the environment name used for local development.
	EnvDevelop = "develop"

	// PubSubProviderLocal pushes events straight to a local worker over HTTP.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// IdentityProviderFirebase verifies Firebase Auth ID tokens.
	IdentityProviderFirebase = "firebase"
	// IdentityProviderJWT verifies HS256 tokens signed with a shared secret.
	IdentityProviderJWT = "jwt"

	// OrderNumberPrefix marks cash-on-delivery orders.
	OrderNumberPrefix = "COD"

	// MaxOrderListLimit caps admin order listings.
	MaxOrderListLimit = 50
	// FeaturedProductLimit caps the featured product rail.
	FeaturedProductLimit = 8
	// DashboardTopN caps the top products and recent orders on the dashboard.
	DashboardTopN = 5
)
