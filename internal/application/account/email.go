package account

import "fmt"

const (
	verificationSubject = "Verify Your Email"
	resetSubject        = "Reset Password"
)

// verificationEmail renders the signup verification message. The link embeds
// the account id and the plaintext token; only the hash is persisted.
func verificationEmail(baseURL, accountID, token string, hours int) string {
	link := fmt.Sprintf("%s/user/verify/%s/%s", baseURL, accountID, token)
	return fmt.Sprintf(
		"<p>Verify your email address to complete the signup and log into your account.</p>"+
			"<p><b>This link expires in %d hours.</b></p>"+
			"<p>Press <a href=%q>here</a> to proceed.</p>",
		hours, link)
}

// resetEmail renders the password reset message. The redirect URL is client
// supplied; the account id and plaintext token are appended as path segments.
func resetEmail(redirectURL, accountID, token string, minutes int) string {
	link := fmt.Sprintf("%s/%s/%s", redirectURL, accountID, token)
	return fmt.Sprintf(
		"<p>We heard that you lost your password.</p>"+
			"<p>Use the link below to reset your password.</p>"+
			"<p><b>This link expires in %d minutes.</b></p>"+
			"<p>Press <a href=%q>here</a> to proceed.</p>",
		minutes, link)
}
