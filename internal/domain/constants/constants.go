package constants

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Deployment environments
const (
	EnvDevelop    = "develop"
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Live channel events
const (
	EventNotification = "notification"
)

// SessionCookieName carries the session token for browser clients.
const SessionCookieName = "authToken"

// ModelAPIKeyHeader carries the shared secret of the inference service.
const ModelAPIKeyHeader = "model-api-key"
