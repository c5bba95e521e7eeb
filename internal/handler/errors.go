package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Play error messages
	ErrMsgPlayFailed           = "Failed to play game"
	ErrMsgGetBalanceFailed     = "Failed to retrieve balance"
	ErrMsgGetStatsFailed       = "Failed to retrieve stats"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"

	// Admin error messages
	ErrMsgSetBalanceFailed   = "Failed to set balance"
	ErrMsgResetAccountFailed = "Failed to reset account"
)

// Success messages for API responses
const (
	MsgBalanceUpdatedSuccess = "Balance updated successfully"
	MsgAccountResetSuccess   = "Account reset successfully"
)
