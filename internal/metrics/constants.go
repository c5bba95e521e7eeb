package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameGamesPlayed        = "games_played_total"
	MetricNameCoinsWagered       = "coins_wagered_total"
	MetricNameCoinsPaidOut       = "coins_paid_out_total"
	MetricNameCooldownRejections = "cooldown_rejections_total"
	MetricNameBetsRejected       = "bets_rejected_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextGamesPlayed        = "Total number of games played"
	HelpTextCoinsWagered       = "Total coins wagered across all games"
	HelpTextCoinsPaidOut       = "Total coins paid out on winning games"
	HelpTextCooldownRejections = "Total plays rejected because the command was on cooldown"
	HelpTextBetsRejected       = "Total bets rejected by validation"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelGame    = "game"
	LabelResult  = "result"
	LabelCommand = "command"
	LabelReason  = "reason"
)

// Values for the result label
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
