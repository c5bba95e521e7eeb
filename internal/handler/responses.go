package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tovald/ChipsBot_Go/internal/cooldown"
	"github.com/tovald/ChipsBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."

	// Bet validation messages
	ErrMsgBetTooSmallError   = "Bet is below the minimum"
	ErrMsgBetTooLargeError   = "Bet is above the maximum"
	ErrMsgNotEnoughCoinsErr  = "Not enough coins"
	ErrMsgInvalidChoiceError = "Invalid choice. Pick heads or tails"
	ErrMsgInvalidTargetError = "Invalid target. Pick a number from 1 to 6"
	ErrMsgUnknownGameError   = "Unknown game"

	// Account messages
	ErrMsgAccountNotFoundError = "Account not found"
	ErrMsgInvalidAmountError   = "Amount must not be negative"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses so callers see an actionable message instead of internals.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrBetBelowMinimum):
		return http.StatusBadRequest, ErrMsgBetTooSmallError
	case errors.Is(err, domain.ErrBetAboveMaximum):
		return http.StatusBadRequest, ErrMsgBetTooLargeError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsErr
	case errors.Is(err, domain.ErrInvalidChoice):
		return http.StatusBadRequest, ErrMsgInvalidChoiceError
	case errors.Is(err, domain.ErrInvalidTarget):
		return http.StatusBadRequest, ErrMsgInvalidTargetError
	case errors.Is(err, domain.ErrUnknownGame):
		return http.StatusBadRequest, ErrMsgUnknownGameError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	}

	var onCooldown *cooldown.ErrOnCooldown
	if errors.As(err, &onCooldown) {
		return http.StatusTooManyRequests, throttledMessage(onCooldown)
	}

	// Everything else is a storage or internal failure; hide details.
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

func throttledMessage(err *cooldown.ErrOnCooldown) string {
	remaining := err.Remaining.Round(time.Second)
	if remaining <= 0 {
		return ErrMsgTooManyRequestsError
	}
	return fmt.Sprintf("Slow down! Try again in %s", remaining)
}
