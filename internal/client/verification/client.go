// Package verification talks to the email-code verification endpoints.
package verification

import (
	"context"
	"fmt"
	"time"
)

// CodeIssued is the response to a code-issuance request. Code is only
// populated by dev-mode deployments that echo the plaintext code back for
// local testing; production responses leave it empty.
type CodeIssued struct {
	Code string
}

// VerifyResult is the session material returned by a successful code
// verification.
type VerifyResult struct {
	// Email is the server-canonical form of the verified address.
	Email string

	// SessionToken is opaque to the client.
	SessionToken string

	// ExpiresAt may be zero when the server leaves expiry to the token.
	ExpiresAt time.Time
}

type Client interface {
	// SendCode asks the backend to email a one-time code.
	SendCode(ctx context.Context, email string) (*CodeIssued, error)

	// VerifyCode exchanges an emailed code for session material.
	VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error)
}

// Error reports a verification request the backend rejected, carrying the
// server-provided message so it can be shown to the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("verification failed (%d): %s", e.Status, e.Message)
}
