package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-account-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper for non-lifecycle endpoints.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeResult emits a lifecycle result. The outcome discrimination lives in
// the body's status field; the HTTP status stays 200 as long as the request
// itself was well-formed.
func writeResult(w http.ResponseWriter, res domain.Result) {
	writeJSON(w, http.StatusOK, res)
}
