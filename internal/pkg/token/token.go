package token

import (
	"strings"

	"github.com/google/uuid"
)

// New generates an opaque verification/reset token: a random UUID with the
// owning account id appended. The suffix ties the token to its account so a
// leaked token is useless against any other record.
func New(accountID string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + accountID
}
