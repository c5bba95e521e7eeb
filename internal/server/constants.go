package server

// HTTP headers
const (
	HeaderAPIKey = "X-API-Key"
)

// PublicPaths are served without an API key: health probes, metrics
// scraping, and the version endpoint.
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// Error messages
const (
	ErrMsgUnauthorized = "Unauthorized"
)

// Log messages
const (
	LogMsgAuthFailed = "Authentication failed"
)

// Request limits
const (
	// MaxRequestBodyBytes bounds request bodies; play requests are tiny.
	MaxRequestBodyBytes = 1 << 20 // 1MB
)
