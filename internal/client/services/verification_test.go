package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/client/verification"
	"github.com/dangolden/bidsmart/internal/logging"
)

// ---- fakes ----

type fakeVerificationClient struct {
	SendCodeRet *verification.CodeIssued
	SendCodeErr error

	VerifyRet *verification.VerifyResult
	VerifyErr error

	LastSendEmail   string
	LastVerifyEmail string
	LastVerifyCode  string
}

func (f *fakeVerificationClient) SendCode(ctx context.Context, email string) (*verification.CodeIssued, error) {
	f.LastSendEmail = email
	return f.SendCodeRet, f.SendCodeErr
}

func (f *fakeVerificationClient) VerifyCode(ctx context.Context, email, code string) (*verification.VerifyResult, error) {
	f.LastVerifyEmail = email
	f.LastVerifyCode = code
	return f.VerifyRet, f.VerifyErr
}

// fakeSessionRepo is an in-memory session.Repository with an injectable
// clock, mirroring the sqlite implementation's expiry behavior.
type fakeSessionRepo struct {
	session *models.VerifiedSession
	now     func() time.Time
	sets    int
}

func (r *fakeSessionRepo) Get(ctx context.Context) *models.VerifiedSession {
	if r.session == nil {
		return nil
	}
	if r.session.Expired(r.now()) {
		r.session = nil
		return nil
	}
	return r.session
}

func (r *fakeSessionRepo) Set(ctx context.Context, s *models.VerifiedSession) {
	r.sets++
	r.session = s
}

func (r *fakeSessionRepo) Clear(ctx context.Context) { r.session = nil }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRepo() *fakeSessionRepo {
	return &fakeSessionRepo{now: time.Now}
}

// ---- TESTS ----

func TestVerificationService_RequestCode_NormalizesEmail(t *testing.T) {
	client := &fakeVerificationClient{SendCodeRet: &verification.CodeIssued{}}
	svc := NewVerificationService(client, newRepo(), testLogger(), false)

	_, err := svc.RequestCode(context.Background(), "  User@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", client.LastSendEmail)
}

func TestVerificationService_RequestCode_DevEchoGating(t *testing.T) {
	client := &fakeVerificationClient{SendCodeRet: &verification.CodeIssued{Code: "123456"}}

	t.Run("suppressed by default", func(t *testing.T) {
		svc := NewVerificationService(client, newRepo(), testLogger(), false)
		code, err := svc.RequestCode(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Empty(t, code)
	})

	t.Run("surfaced in dev mode", func(t *testing.T) {
		svc := NewVerificationService(client, newRepo(), testLogger(), true)
		code, err := svc.RequestCode(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, "123456", code)
	})
}

func TestVerificationService_SubmitCode_WritesSessionBeforeReturning(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute)
	client := &fakeVerificationClient{VerifyRet: &verification.VerifyResult{
		Email:        "User@Example.com",
		SessionToken: "abc",
		ExpiresAt:    expires,
	}}
	repo := newRepo()
	svc := NewVerificationService(client, repo, testLogger(), false)

	verified, err := svc.SubmitCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", verified.Email, "canonical email is lowercased")
	assert.Equal(t, "abc", verified.SessionToken)
	assert.True(t, verified.ExpiresAt.Equal(expires))
	assert.Equal(t, 1, repo.sets, "session must be written through the store")

	// No separate store call needed; the write is already visible.
	assert.True(t, svc.IsVerified(context.Background(), "user@example.com"))
	assert.True(t, svc.IsVerified(context.Background(), "USER@example.COM"))
	assert.False(t, svc.IsVerified(context.Background(), "other@example.com"))
}

func TestVerificationService_IsVerified_FalseAfterExpiry(t *testing.T) {
	client := &fakeVerificationClient{VerifyRet: &verification.VerifyResult{
		Email:        "User@Example.com",
		SessionToken: "abc",
		ExpiresAt:    time.Now().Add(600 * time.Second),
	}}
	repo := newRepo()
	svc := NewVerificationService(client, repo, testLogger(), false)

	_, err := svc.SubmitCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	require.True(t, svc.IsVerified(context.Background(), "user@example.com"))

	repo.now = func() time.Time { return time.Now().Add(601 * time.Second) }
	assert.False(t, svc.IsVerified(context.Background(), "user@example.com"))
}

func TestVerificationService_SubmitCode_FailureLeavesStoreUntouched(t *testing.T) {
	client := &fakeVerificationClient{VerifyErr: &verification.Error{Status: 400, Message: "invalid or expired code"}}
	repo := newRepo()
	svc := NewVerificationService(client, repo, testLogger(), false)

	_, err := svc.SubmitCode(context.Background(), "user@example.com", "000000")
	require.Error(t, err)
	assert.Zero(t, repo.sets)
	assert.False(t, svc.IsVerified(context.Background(), "user@example.com"))
}

func TestVerificationService_SessionExpiry_FromJWT(t *testing.T) {
	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	client := &fakeVerificationClient{VerifyRet: &verification.VerifyResult{
		Email:        "user@example.com",
		SessionToken: token,
	}}
	svc := NewVerificationService(client, newRepo(), testLogger(), false)

	verified, err := svc.SubmitCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, verified.ExpiresAt.Equal(exp), "expiry derived from the token's exp claim")
}

func TestVerificationService_SessionExpiry_DefaultTTL(t *testing.T) {
	client := &fakeVerificationClient{VerifyRet: &verification.VerifyResult{
		Email:        "user@example.com",
		SessionToken: "opaque-not-a-jwt",
	}}
	svc := NewVerificationService(client, newRepo(), testLogger(), false).(*verificationService)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	verified, err := svc.SubmitCode(context.Background(), "user@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, verified.ExpiresAt.Equal(now.Add(defaultSessionTTL)))
}

func TestVerificationService_Current(t *testing.T) {
	repo := newRepo()
	svc := NewVerificationService(&fakeVerificationClient{}, repo, testLogger(), false)

	assert.Nil(t, svc.Current(context.Background()))

	repo.session = &models.VerifiedSession{Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	got := svc.Current(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestVerificationService_Logout(t *testing.T) {
	repo := newRepo()
	repo.session = &models.VerifiedSession{Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	svc := NewVerificationService(&fakeVerificationClient{}, repo, testLogger(), false)

	svc.Logout(context.Background())
	assert.False(t, svc.IsVerified(context.Background(), "user@example.com"))
}

func TestVerificationService_RequestCode_PropagatesClientError(t *testing.T) {
	client := &fakeVerificationClient{SendCodeErr: errors.New("boom")}
	svc := NewVerificationService(client, newRepo(), testLogger(), false)

	_, err := svc.RequestCode(context.Background(), "user@example.com")
	require.Error(t, err)
}
