package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-account-api/internal/application/account"
	"github.com/go-account-api/internal/domain"
)

// PasswordResetHandler handles reset issuance and completion.
type PasswordResetHandler struct {
	svc account.Service
}

func NewPasswordResetHandler(svc account.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

func (h *PasswordResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeResult(w, h.svc.RequestPasswordReset(r.Context(), req))
}

func (h *PasswordResetHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeResult(w, h.svc.CompletePasswordReset(r.Context(), req))
}
