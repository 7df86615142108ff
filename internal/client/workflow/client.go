// Package workflow submits document batches to the remote analysis
// workflow and polls the resulting job to a terminal state.
package workflow

import (
	"context"
	"encoding/json"

	"github.com/dangolden/bidsmart/internal/client/models"
)

// Metadata carries the non-document inputs of a workflow run.
type Metadata struct {
	// Notes is free text attached to the submission.
	Notes string

	// Priorities lists the analysis aspects the user cares about most.
	// Passed through to the workflow as-is.
	Priorities []string

	// RequestID is a caller-supplied idempotency id. Generated when empty.
	RequestID string

	CallbackURL string
	ProjectID   string
}

// StatusUpdate is one observation of a job's remote state.
type StatusUpdate struct {
	Status models.JobStatus

	// Result is the opaque analysis payload, present once Status is
	// Succeeded.
	Result json.RawMessage

	// Error is the remote failure message, present once Status is Failed.
	Error string
}

type Client interface {
	// Run creates a job from the encoded batch. It does not retry:
	// resubmission may duplicate analysis work downstream, so retries are
	// the caller's decision.
	Run(ctx context.Context, documents []models.EncodedDocument, meta Metadata) (*models.WorkflowJob, error)

	// Status queries the remote state of a job. Failures that prove
	// nothing about the job (network hiccups, unrecognized payloads) are
	// reported as ErrTransient.
	Status(ctx context.Context, jobID string) (*StatusUpdate, error)
}
