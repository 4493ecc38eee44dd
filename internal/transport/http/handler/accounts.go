package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-account-api/internal/application/account"
	"github.com/go-account-api/internal/domain"
)

// AccountHandler handles signup and sign-in.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeResult(w, h.svc.Signup(r.Context(), req))
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req domain.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeResult(w, h.svc.SignIn(r.Context(), req))
}
