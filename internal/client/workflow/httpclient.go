package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/common"
	"github.com/dangolden/bidsmart/internal/netx"
)

// HTTPClient talks to the remote workflow engine over its HTTP API.
type HTTPClient struct {
	baseURL    string
	workflowID string
	apiKey     string
	http       *http.Client

	// now is a test seam for SubmittedAt stamps.
	now func() time.Time
}

func NewHTTPClient(baseURL, workflowID, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		workflowID: workflowID,
		apiKey:     apiKey,
		http:       &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (c *HTTPClient) headers() map[string]string {
	return map[string]string{
		common.AuthorizationHeader: "Bearer " + c.apiKey,
	}
}

// runResponse captures the job identifier from the engine's response.
// Everything else in the payload is owned by the remote system and passed
// over.
type runResponse struct {
	RunID string `json:"run_id"`
	ID    string `json:"id"`
}

func (r *runResponse) jobID() string {
	if r.RunID != "" {
		return r.RunID
	}
	return r.ID
}

func (c *HTTPClient) Run(ctx context.Context, documents []models.EncodedDocument, meta Metadata) (*models.WorkflowJob, error) {
	requestID := meta.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	body := map[string]any{
		fieldDocuments:   documents,
		fieldNotes:       meta.Notes,
		fieldPriorities:  meta.Priorities,
		fieldRequestID:   requestID,
		fieldCallbackURL: meta.CallbackURL,
		fieldProjectID:   meta.ProjectID,
	}

	url := fmt.Sprintf("%s/workflows/%s/run", c.baseURL, c.workflowID)
	status, respBody, err := netx.PostJSON(ctx, c.http, url, c.headers(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, fmt.Errorf("%w: workflow engine returned %d", common.ErrUnauthorized, status)
	}
	if status < 200 || status >= 300 {
		return nil, &SubmissionError{
			Status:  status,
			Message: netx.ErrorMessage(respBody, "workflow rejected the submission"),
		}
	}

	var resp runResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("parse run response: %w", err)
	}
	if resp.jobID() == "" {
		return nil, &SubmissionError{Status: status, Message: "run response carried no job id"}
	}

	return &models.WorkflowJob{
		JobID:       resp.jobID(),
		SubmittedAt: c.now(),
		Status:      models.JobStatusPending,
	}, nil
}

type statusResponse struct {
	State   string          `json:"state"`
	Outputs json.RawMessage `json:"outputs"`
	Error   string          `json:"error"`
}

// remoteStates maps the engine's state names onto the job state machine.
var remoteStates = map[string]models.JobStatus{
	"pending":   models.JobStatusPending,
	"queued":    models.JobStatusPending,
	"running":   models.JobStatusRunning,
	"started":   models.JobStatusRunning,
	"succeeded": models.JobStatusSucceeded,
	"done":      models.JobStatusSucceeded,
	"failed":    models.JobStatusFailed,
	"error":     models.JobStatusFailed,
}

func (c *HTTPClient) Status(ctx context.Context, jobID string) (*StatusUpdate, error) {
	url := fmt.Sprintf("%s/workflows/runs/%s", c.baseURL, jobID)
	status, body, err := netx.GetJSON(ctx, c.http, url, c.headers())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: status endpoint returned %d", ErrTransient, status)
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unreadable status payload: %v", ErrTransient, err)
	}

	jobStatus, ok := remoteStates[resp.State]
	if !ok {
		// An unrecognized state proves nothing about the job; let the
		// next poll try again.
		return nil, fmt.Errorf("%w: unrecognized state %q", ErrTransient, resp.State)
	}

	return &StatusUpdate{Status: jobStatus, Result: resp.Outputs, Error: resp.Error}, nil
}
