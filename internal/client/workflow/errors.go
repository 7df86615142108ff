package workflow

import (
	"errors"
	"fmt"
)

// ErrTransient marks a poll attempt that produced no usable status. The
// poller swallows these per tick; they count toward the overall timeout
// but never abort the job on their own.
var ErrTransient = errors.New("transient polling error")

// SubmissionError reports a workflow run request the remote engine
// rejected. It carries the remote status and message so the caller can
// decide whether resubmitting makes sense.
type SubmissionError struct {
	Status  int
	Message string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("workflow submission failed (%d): %s", e.Status, e.Message)
}
