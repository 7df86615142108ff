package common

const (
	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// APIKeyHeader carries the verification service API key.
	APIKeyHeader = "apikey"
)
