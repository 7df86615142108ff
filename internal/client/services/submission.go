package services

import (
	"context"
	"fmt"

	"github.com/dangolden/bidsmart/internal/client/codec"
	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/client/validation"
	"github.com/dangolden/bidsmart/internal/client/workflow"
	"github.com/dangolden/bidsmart/internal/common"
	"github.com/dangolden/bidsmart/internal/logging"
)

// SubmissionService drives a document batch through validation, encoding
// and submission, and waits for the resulting job.
type SubmissionService interface {
	// Submit validates and encodes files, then creates a workflow job.
	// Validation failures are reported before any network call.
	Submit(ctx context.Context, files []models.DocumentFile, meta workflow.Metadata, onProgress codec.Progress) (*models.WorkflowJob, error)

	// Await polls the job to a terminal state. The only error it returns
	// is context cancellation.
	Await(ctx context.Context, job *models.WorkflowJob) error
}

type submissionService struct {
	validator *validation.Validator
	client    workflow.Client
	poller    *workflow.Poller
	log       logging.Logger
}

func NewSubmissionService(validator *validation.Validator, client workflow.Client, poller *workflow.Poller, log logging.Logger) SubmissionService {
	return &submissionService{
		validator: validator,
		client:    client,
		poller:    poller,
		log:       log,
	}
}

func (s *submissionService) Submit(ctx context.Context, files []models.DocumentFile, meta workflow.Metadata, onProgress codec.Progress) (*models.WorkflowJob, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no documents selected", common.ErrValidation)
	}
	if err := s.validator.ValidateCount(len(files)); err != nil {
		return nil, err
	}
	for _, f := range files {
		if err := s.validator.Validate(f); err != nil {
			return nil, err
		}
	}
	if res := s.validator.CheckPayloadLimits(files); !res.Valid {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, res.Message)
	}

	documents, err := codec.EncodeBatch(files, onProgress)
	if err != nil {
		return nil, err
	}

	job, err := s.client.Run(ctx, documents, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "batch submitted",
		"job_id", job.JobID, "documents", len(documents))
	return job, nil
}

func (s *submissionService) Await(ctx context.Context, job *models.WorkflowJob) error {
	return s.poller.Wait(ctx, job)
}
