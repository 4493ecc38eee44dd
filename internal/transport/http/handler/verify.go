package handler

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-account-api/internal/application/account"
	"github.com/go-chi/chi/v5"
)

// VerifyHandler handles the verification link and the confirmation page.
type VerifyHandler struct {
	svc account.Service
}

func NewVerifyHandler(svc account.Service) *VerifyHandler {
	return &VerifyHandler{svc: svc}
}

// Confirm consumes the emailed verification link. Success serves the static
// confirmation page; failures redirect to the page with the message encoded
// in the query string.
func (h *VerifyHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	token := chi.URLParam(r, "token")

	if err := h.svc.ConfirmVerification(r.Context(), accountID, token); err != nil {
		q := url.Values{}
		q.Set("error", "true")
		q.Set("message", err.Error())
		http.Redirect(w, r, "/user/verified?"+q.Encode(), http.StatusSeeOther)
		return
	}
	renderVerifiedPage(w, "")
}

// Verified serves the confirmation page. When the verify endpoint redirected
// here with an error, the message is rendered instead of the success text.
func (h *VerifyHandler) Verified(w http.ResponseWriter, r *http.Request) {
	msg := ""
	if r.URL.Query().Get("error") == "true" {
		msg = r.URL.Query().Get("message")
	}
	renderVerifiedPage(w, msg)
}

var verifiedTmpl = template.Must(template.New("verified").Parse(`<!DOCTYPE html>
<html>
<head><title>Email Verification</title></head>
<body>
{{if .Error}}
<h1>Verification failed</h1>
<p>{{.Error}}</p>
{{else}}
<h1>Email verified</h1>
<p>Your email address has been verified. You can now sign in to your account.</p>
{{end}}
</body>
</html>
`))

func renderVerifiedPage(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = verifiedTmpl.Execute(w, struct{ Error string }{Error: errMsg})
}
