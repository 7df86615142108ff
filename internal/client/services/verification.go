// Package services contains application services for the BidSmart client.
// This file defines the verification service: code request/exchange and
// the locally cached verified-session gate in front of report data.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/client/repositories/session"
	"github.com/dangolden/bidsmart/internal/client/verification"
	"github.com/dangolden/bidsmart/internal/logging"
)

// defaultSessionTTL applies when neither the response nor the session
// token carries an expiry.
const defaultSessionTTL = 30 * time.Minute

// VerificationService mediates the email-code exchange and the cached
// verified session.
//
// Contract:
//   - RequestCode: ask the backend to email a one-time code. The returned
//     code is non-empty only in dev mode, for local testing.
//   - SubmitCode: exchange the code for a session. On success the session
//     is written through the store before the call returns, so IsVerified
//     reflects the verification immediately.
//   - IsVerified: case-insensitive check against the cached session.
//   - Current: the cached session itself, nil when absent or expired.
//   - Logout: drop the cached session.
type VerificationService interface {
	RequestCode(ctx context.Context, email string) (string, error)
	SubmitCode(ctx context.Context, email, code string) (*models.VerifiedSession, error)
	IsVerified(ctx context.Context, email string) bool
	Current(ctx context.Context) *models.VerifiedSession
	Logout(ctx context.Context)
}

type verificationService struct {
	client   verification.Client
	sessions session.Repository
	log      logging.Logger
	devMode  bool

	// now is a test seam for expiry defaults.
	now func() time.Time
}

// NewVerificationService constructs a VerificationService. devMode
// controls whether dev-only code echoes are surfaced; it must stay off in
// production builds.
func NewVerificationService(client verification.Client, sessions session.Repository, log logging.Logger, devMode bool) VerificationService {
	return &verificationService{
		client:   client,
		sessions: sessions,
		log:      log,
		devMode:  devMode,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *verificationService) RequestCode(ctx context.Context, email string) (string, error) {
	issued, err := s.client.SendCode(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if !s.devMode {
		return "", nil
	}
	return issued.Code, nil
}

func (s *verificationService) SubmitCode(ctx context.Context, email, code string) (*models.VerifiedSession, error) {
	email = normalizeEmail(email)

	res, err := s.client.VerifyCode(ctx, email, code)
	if err != nil {
		// The store is left untouched on failure.
		return nil, err
	}

	canonical := normalizeEmail(res.Email)
	if canonical == "" {
		canonical = email
	}

	verified := &models.VerifiedSession{
		Email:        canonical,
		SessionToken: res.SessionToken,
		ExpiresAt:    s.sessionExpiry(res),
	}

	s.sessions.Set(ctx, verified)
	s.log.Info(ctx, "email verified", "email", canonical, "expires_at", verified.ExpiresAt)

	return verified, nil
}

// sessionExpiry resolves the session expiry: the response value wins;
// otherwise, when the opaque token happens to be a JWT, its exp claim
// fills in; failing both, a default TTL applies.
func (s *verificationService) sessionExpiry(res *verification.VerifyResult) time.Time {
	if !res.ExpiresAt.IsZero() {
		return res.ExpiresAt
	}
	if exp := tokenExpiry(res.SessionToken); !exp.IsZero() {
		return exp
	}
	return s.now().Add(defaultSessionTTL)
}

func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

func (s *verificationService) IsVerified(ctx context.Context, email string) bool {
	cached := s.sessions.Get(ctx)
	return cached != nil && cached.Matches(normalizeEmail(email))
}

// Current returns the cached verified session, if any. The store drops
// expired sessions on read, so a non-nil result is still valid.
func (s *verificationService) Current(ctx context.Context) *models.VerifiedSession {
	return s.sessions.Get(ctx)
}

func (s *verificationService) Logout(ctx context.Context) {
	s.sessions.Clear(ctx)
}
