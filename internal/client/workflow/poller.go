package workflow

import (
	"context"
	"time"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/logging"
)

// Poller drives a submitted job to a terminal state by querying its
// status at a fixed interval.
//
// A job moves Pending -> Running -> {Succeeded | Failed}, with a side
// transition to TimedOut once the wall clock since SubmittedAt exceeds
// the timeout budget. Status never regresses, and a terminal job is
// never polled again.
//
// One poller instance drives one job; callers wanting concurrent batches
// give each job its own poller.
type Poller struct {
	client   Client
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	// now is a test seam for the timeout budget.
	now func() time.Time
}

func NewPoller(client Client, interval, timeout time.Duration, log logging.Logger) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		timeout:  timeout,
		log:      log.With("component", "poller"),
		now:      time.Now,
	}
}

// Wait polls until the job reaches a terminal state, the timeout budget
// since SubmittedAt is spent, or ctx is cancelled. Cancellation stops
// future polling but does not attempt to cancel the remote job; it is the
// only case in which Wait returns a non-nil error.
//
// Transient poll failures are swallowed per tick: they consume timeout
// budget but never abort a long-running job. The pair
// (elapsed, consecutive transient errors) is tracked explicitly so a
// single flaky poll is distinguishable from a dead endpoint in the logs.
func (p *Poller) Wait(ctx context.Context, job *models.WorkflowJob) error {
	if job.Status.Terminal() {
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	consecutiveTransient := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			elapsed := p.now().Sub(job.SubmittedAt)
			if elapsed >= p.timeout {
				job.Advance(models.JobStatusTimedOut)
				p.log.Warn(ctx, "job timed out",
					"job_id", job.JobID, "elapsed", elapsed)
				return nil
			}

			update, err := p.client.Status(ctx, job.JobID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				consecutiveTransient++
				p.log.Warn(ctx, "poll inconclusive",
					"job_id", job.JobID,
					"elapsed", elapsed,
					"consecutive_errors", consecutiveTransient,
					"error", err)
				continue
			}
			consecutiveTransient = 0

			if job.Advance(update.Status) {
				p.log.Info(ctx, "job status changed",
					"job_id", job.JobID, "status", job.Status)
			}

			switch job.Status {
			case models.JobStatusSucceeded:
				job.Result = update.Result
				return nil
			case models.JobStatusFailed:
				job.Error = update.Error
				return nil
			}
		}
	}
}
