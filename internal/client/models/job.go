package models

import (
	"encoding/json"
	"time"
)

// JobStatus classifies the lifecycle state of a workflow job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
	JobStatusTimedOut  JobStatus = "timed_out"
)

// statusRank orders statuses along the state machine so that a poll
// response can never move a job backwards.
var statusRank = map[JobStatus]int{
	JobStatusPending:   0,
	JobStatusRunning:   1,
	JobStatusSucceeded: 2,
	JobStatusFailed:    2,
	JobStatusTimedOut:  2,
}

// Terminal reports whether the job will not transition further.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed || s == JobStatusTimedOut
}

// Before reports whether s comes strictly earlier in the state machine
// than other. Terminal states compare equal to each other.
func (s JobStatus) Before(other JobStatus) bool {
	return statusRank[s] < statusRank[other]
}

// WorkflowJob tracks one submission to the remote analysis workflow.
// It lives only for the duration of the submitting session.
type WorkflowJob struct {
	// JobID is the identifier assigned by the remote workflow engine.
	JobID string

	// SubmittedAt anchors the polling timeout budget.
	SubmittedAt time.Time

	Status JobStatus

	// Result holds the opaque analysis payload once Status is Succeeded.
	Result json.RawMessage

	// Error holds the remote failure message once Status is Failed.
	Error string
}

// Advance applies a newly observed status, ignoring any regression to an
// earlier state. It returns true when the status actually changed.
func (j *WorkflowJob) Advance(s JobStatus) bool {
	if j.Status.Terminal() || s.Before(j.Status) || s == j.Status {
		return false
	}
	j.Status = s
	return true
}
