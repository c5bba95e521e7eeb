package handler

import (
	"net/http"

	"github.com/tovald/ChipsBot_Go/internal/gamble"
)

// AdminHandler exposes moderator operations. Routes behind these
// handlers bypass bet validation and cooldowns; authorization is the
// caller's responsibility (API key at the router).
type AdminHandler struct {
	service gamble.Service
}

func NewAdminHandler(service gamble.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

type SetBalanceRequest struct {
	AccountID   string `json:"account_id" validate:"required"`
	CommunityID string `json:"community_id" validate:"required"`
	Balance     int64  `json:"balance"`
}

type SetBalanceResponse struct {
	Message    string `json:"message"`
	AccountID  string `json:"account_id"`
	NewBalance int64  `json:"new_balance"`
}

func (h *AdminHandler) HandleSetBalance(w http.ResponseWriter, r *http.Request) {
	var req SetBalanceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set balance"); err != nil {
		return
	}

	newBalance, err := h.service.AdminSetBalance(r.Context(), req.AccountID, req.CommunityID, req.Balance)
	if err != nil {
		respondServiceError(w, r, "Set balance", err)
		return
	}

	respondJSON(w, http.StatusOK, SetBalanceResponse{
		Message:    MsgBalanceUpdatedSuccess,
		AccountID:  req.AccountID,
		NewBalance: newBalance,
	})
}

type ResetAccountRequest struct {
	AccountID   string `json:"account_id" validate:"required"`
	CommunityID string `json:"community_id" validate:"required"`
}

func (h *AdminHandler) HandleResetAccount(w http.ResponseWriter, r *http.Request) {
	var req ResetAccountRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reset account"); err != nil {
		return
	}

	newBalance, err := h.service.AdminResetAccount(r.Context(), req.AccountID, req.CommunityID)
	if err != nil {
		respondServiceError(w, r, "Reset account", err)
		return
	}

	respondJSON(w, http.StatusOK, SetBalanceResponse{
		Message:    MsgAccountResetSuccess,
		AccountID:  req.AccountID,
		NewBalance: newBalance,
	})
}
