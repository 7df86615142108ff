package workflow

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/logging"
)

// ---- fake client ----

// step is one scripted poll outcome.
type step struct {
	update *StatusUpdate
	err    error
}

type fakeClient struct {
	mu    sync.Mutex
	steps []step
	calls int
}

func (f *fakeClient) Run(ctx context.Context, documents []models.EncodedDocument, meta Metadata) (*models.WorkflowJob, error) {
	panic("not used")
}

func (f *fakeClient) Status(ctx context.Context, jobID string) (*StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	i := f.calls - 1
	if i >= len(f.steps) {
		i = len(f.steps) - 1 // repeat the last step forever
	}
	s := f.steps[i]
	return s.update, s.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestPoller(c Client, timeout time.Duration) *Poller {
	return NewPoller(c, time.Millisecond, timeout, testLogger())
}

func pendingJob() *models.WorkflowJob {
	return &models.WorkflowJob{JobID: "run-42", SubmittedAt: time.Now(), Status: models.JobStatusPending}
}

// ---- TESTS ----

func TestPoller_Wait_DrivesJobToSuccess(t *testing.T) {
	client := &fakeClient{steps: []step{
		{update: &StatusUpdate{Status: models.JobStatusPending}},
		{update: &StatusUpdate{Status: models.JobStatusRunning}},
		{update: &StatusUpdate{Status: models.JobStatusSucceeded, Result: []byte(`{"score":87}`)}},
	}}

	job := pendingJob()
	require.NoError(t, newTestPoller(client, time.Minute).Wait(context.Background(), job))

	assert.Equal(t, models.JobStatusSucceeded, job.Status)
	assert.JSONEq(t, `{"score":87}`, string(job.Result))
	assert.Equal(t, 3, client.callCount())
}

func TestPoller_Wait_FailurePopulatesError(t *testing.T) {
	client := &fakeClient{steps: []step{
		{update: &StatusUpdate{Status: models.JobStatusFailed, Error: "analysis crashed"}},
	}}

	job := pendingJob()
	require.NoError(t, newTestPoller(client, time.Minute).Wait(context.Background(), job))

	assert.Equal(t, models.JobStatusFailed, job.Status)
	assert.Equal(t, "analysis crashed", job.Error)
}

func TestPoller_Wait_SwallowsTransientErrors(t *testing.T) {
	client := &fakeClient{steps: []step{
		{err: ErrTransient},
		{err: ErrTransient},
		{update: &StatusUpdate{Status: models.JobStatusSucceeded}},
	}}

	job := pendingJob()
	require.NoError(t, newTestPoller(client, time.Minute).Wait(context.Background(), job))

	assert.Equal(t, models.JobStatusSucceeded, job.Status, "flaky polls must not abort the job")
	assert.Equal(t, 3, client.callCount())
}

func TestPoller_Wait_StatusNeverRegresses(t *testing.T) {
	client := &fakeClient{steps: []step{
		{update: &StatusUpdate{Status: models.JobStatusRunning}},
		{update: &StatusUpdate{Status: models.JobStatusPending}}, // late out-of-order response
		{update: &StatusUpdate{Status: models.JobStatusSucceeded}},
	}}

	job := pendingJob()
	require.NoError(t, newTestPoller(client, time.Minute).Wait(context.Background(), job))

	assert.Equal(t, models.JobStatusSucceeded, job.Status)
}

func TestPoller_Wait_TimesOut(t *testing.T) {
	client := &fakeClient{steps: []step{
		{update: &StatusUpdate{Status: models.JobStatusRunning}},
	}}

	job := pendingJob()
	p := newTestPoller(client, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Wait(context.Background(), job)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not terminate within the timeout budget")
	}

	assert.Equal(t, models.JobStatusTimedOut, job.Status)
}

func TestPoller_Wait_TimesOutOnEndlessTransientErrors(t *testing.T) {
	client := &fakeClient{steps: []step{{err: ErrTransient}}}

	job := pendingJob()
	require.NoError(t, newTestPoller(client, 15*time.Millisecond).Wait(context.Background(), job))

	assert.Equal(t, models.JobStatusTimedOut, job.Status,
		"transient errors consume the timeout budget instead of spinning forever")
}

func TestPoller_Wait_Cancellation(t *testing.T) {
	client := &fakeClient{steps: []step{
		{update: &StatusUpdate{Status: models.JobStatusRunning}},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	job := pendingJob()

	errCh := make(chan error, 1)
	go func() { errCh <- newTestPoller(client, time.Minute).Wait(ctx, job) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancellation did not stop the poll loop")
	}

	assert.False(t, job.Status.Terminal(), "cancellation does not decide the job")
}

func TestPoller_Wait_TerminalJobIsNotPolled(t *testing.T) {
	client := &fakeClient{steps: []step{{update: &StatusUpdate{Status: models.JobStatusRunning}}}}

	job := &models.WorkflowJob{JobID: "run-42", Status: models.JobStatusSucceeded}
	require.NoError(t, newTestPoller(client, time.Minute).Wait(context.Background(), job))

	assert.Zero(t, client.callCount(), "terminal jobs must not be polled")
}
