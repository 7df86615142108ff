package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dangolden/bidsmart/internal/common"
	"github.com/dangolden/bidsmart/internal/netx"
)

// HTTPClient calls the verification backend's HTTP functions. Both
// endpoints require the service bearer token and API key.
type HTTPClient struct {
	baseURL     string
	bearerToken string
	apiKey      string
	http        *http.Client
}

func NewHTTPClient(baseURL, bearerToken, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		bearerToken: bearerToken,
		apiKey:      apiKey,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) headers() map[string]string {
	return map[string]string{
		common.AuthorizationHeader: "Bearer " + c.bearerToken,
		common.APIKeyHeader:        c.apiKey,
	}
}

func (c *HTTPClient) SendCode(ctx context.Context, email string) (*CodeIssued, error) {
	status, body, err := netx.PostJSON(ctx, c.http, c.baseURL+"/send-verification-code", c.headers(),
		map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, fmt.Errorf("%w: verification service returned %d", common.ErrUnauthorized, status)
	}
	if status < 200 || status >= 300 {
		return nil, &Error{Status: status, Message: netx.ErrorMessage(body, "could not send verification code")}
	}

	var resp struct {
		Code string `json:"code"`
	}
	// A missing or unreadable body is fine here; only dev-mode responses
	// carry anything the client cares about.
	_ = json.Unmarshal(body, &resp)

	return &CodeIssued{Code: resp.Code}, nil
}

func (c *HTTPClient) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	status, body, err := netx.PostJSON(ctx, c.http, c.baseURL+"/verify-code", c.headers(),
		map[string]string{"email": email, "code": code})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if status < 200 || status >= 300 {
		return nil, &Error{Status: status, Message: netx.ErrorMessage(body, "verification failed")}
	}

	var resp struct {
		Email        string    `json:"email"`
		SessionToken string    `json:"sessionToken"`
		ExpiresAt    time.Time `json:"expiresAt"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse verification response: %w", err)
	}
	if resp.SessionToken == "" {
		return nil, &Error{Status: status, Message: "verification response carried no session token"}
	}

	return &VerifyResult{
		Email:        resp.Email,
		SessionToken: resp.SessionToken,
		ExpiresAt:    resp.ExpiresAt,
	}, nil
}
