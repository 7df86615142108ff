// Package session persists the locally cached verified session.
//
// All operations are best-effort: a lost or corrupted session degrades to
// "ask the user to re-verify", it never crashes the flow. Storage errors
// are logged and absorbed rather than returned.
package session

import (
	"context"

	"github.com/dangolden/bidsmart/internal/client/models"
)

// StorageKey is the fixed key the verified session record lives under.
// Reader and writer must agree on it, hence the single constant.
const StorageKey = "verified_session"

type Repository interface {
	// Get returns the cached session, or nil when there is none, it has
	// expired, or the stored record is unreadable. Expired or corrupted
	// records are cleared as a side effect.
	Get(ctx context.Context) *models.VerifiedSession

	// Set overwrites any existing session.
	Set(ctx context.Context, s *models.VerifiedSession)

	// Clear removes the stored session.
	Clear(ctx context.Context)
}
