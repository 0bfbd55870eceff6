// Package common contains shared constants and sentinel errors used across
// relocost components.
package common

const (
	// AuthHeaderName is the HTTP header that carries the session credential
	// on outbound requests.
	AuthHeaderName = "Authorization"

	// AuthScheme is the prefix the server expects before the token value.
	AuthScheme = "Token"

	// RequestIDHeaderName carries a client-generated id for request tracing.
	RequestIDHeaderName = "X-Request-Id"
)

// Durable storage keys for the persisted session. Both are written and
// cleared together, never independently.
const (
	SessionTokenKey = "auth_token"
	SessionUserKey  = "auth_user"
)
