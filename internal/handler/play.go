package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/tovald/ChipsBot_Go/internal/domain"
	"github.com/tovald/ChipsBot_Go/internal/gamble"
)

// PlayHandler exposes the gamble service over HTTP.
type PlayHandler struct {
	service gamble.Service
}

func NewPlayHandler(service gamble.Service) *PlayHandler {
	return &PlayHandler{service: service}
}

type PlayRequest struct {
	AccountID   string `json:"account_id" validate:"required"`
	CommunityID string `json:"community_id" validate:"required"`
	Game        string `json:"game" validate:"required,game"`
	Amount      int64  `json:"amount" validate:"min=0"`
	Choice      string `json:"choice,omitempty"`
	Target      int    `json:"target,omitempty"`
}

func (h *PlayHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Play"); err != nil {
		return
	}

	bet := domain.BetRequest{
		Kind:   domain.GameKind(strings.ToLower(req.Game)),
		Amount: req.Amount,
		Choice: req.Choice,
		Target: req.Target,
	}

	result, err := h.service.Play(r.Context(), req.AccountID, req.CommunityID, bet)
	if err != nil {
		respondServiceError(w, r, "Play", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type BalanceResponse struct {
	AccountID   string `json:"account_id"`
	CommunityID string `json:"community_id"`
	Balance     int64  `json:"balance"`
}

func (h *PlayHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}
	communityID, ok := GetQueryParam(r, w, "community_id")
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), accountID, communityID)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{
		AccountID:   accountID,
		CommunityID: communityID,
		Balance:     balance,
	})
}

func (h *PlayHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetQueryParam(r, w, "account_id")
	if !ok {
		return
	}
	communityID, ok := GetQueryParam(r, w, "community_id")
	if !ok {
		return
	}

	stats, err := h.service.GetStats(r.Context(), accountID, communityID)
	if err != nil {
		respondServiceError(w, r, "Get stats", err)
		return
	}
	if stats == nil {
		// An account that never played has all-zero stats, not an error.
		stats = &domain.Account{AccountID: accountID, CommunityID: communityID}
	}

	respondJSON(w, http.StatusOK, stats)
}

type LeaderboardResponse struct {
	CommunityID string                    `json:"community_id"`
	Entries     []domain.LeaderboardEntry `json:"entries"`
}

func (h *PlayHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	communityID, ok := GetQueryParam(r, w, "community_id")
	if !ok {
		return
	}

	limitStr := GetOptionalQueryParam(r, "limit", strconv.Itoa(gamble.DefaultLeaderboardSize))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetLeaderboard(r.Context(), communityID, limit)
	if err != nil {
		respondServiceError(w, r, "Get leaderboard", err)
		return
	}

	respondJSON(w, http.StatusOK, LeaderboardResponse{
		CommunityID: communityID,
		Entries:     entries,
	})
}
