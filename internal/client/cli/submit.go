package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/client/workflow"
	"github.com/dangolden/bidsmart/internal/common"
	"github.com/dangolden/bidsmart/internal/filex"
)

// openFiles is a test seam for filex.Open.
var openFiles = func(paths []string) ([]models.DocumentFile, error) {
	files := make([]models.DocumentFile, 0, len(paths))
	for _, p := range paths {
		f, err := filex.Open(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// Submit sends the documents at the given paths to the analysis workflow
// and waits for the job to finish.
//
// The user is prompted for optional notes and priorities before anything
// leaves the machine. Validation failures are printed verbatim and no
// submission is made. After a successful submission the command blocks on
// the poller; Ctrl-C abandons the wait, not the job.
func (a *App) Submit(ctx context.Context, paths []string) error {
	files, err := openFiles(paths)
	if err != nil {
		printlnFn("Cannot read documents:", err.Error())
		return err
	}

	notes, err := getMultiline(a.reader, "Notes for the analysts (optional)", os.Stdout)
	if err != nil {
		return err
	}
	prioLine, err := getSimpleText(a.reader, "Priorities, comma-separated (optional)", os.Stdout)
	if err != nil {
		return err
	}

	meta := workflow.Metadata{
		Notes:       notes,
		Priorities:  splitPriorities(prioLine),
		CallbackURL: a.config.CallbackURL,
		ProjectID:   a.config.ProjectID,
	}

	onProgress := func(index, total int, filename string) {
		printlnFn(fmt.Sprintf("Encoding %d/%d: %s", index+1, total, filename))
	}

	job, err := a.submission.Submit(ctx, files, meta, onProgress)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn(err.Error())
		} else {
			printlnFn("Submission failed:", err.Error())
		}
		return err
	}

	a.lastJob = job
	printlnFn("Submitted, job id: " + job.JobID)
	printlnFn("Waiting for the analysis to finish...")

	if err := a.submission.Await(ctx, job); err != nil {
		printlnFn("Wait interrupted:", err.Error())
		return err
	}

	switch job.Status {
	case models.JobStatusSucceeded:
		printlnFn("Analysis finished. Type 'report' to see the results.")
	case models.JobStatusFailed:
		printlnFn("Analysis failed:", job.Error)
	case models.JobStatusTimedOut:
		printlnFn("The analysis is taking longer than expected. Try 'status' later.")
	}
	return nil
}

// Status prints the state of the last submitted job.
func (a *App) Status(ctx context.Context) error {
	if a.lastJob == nil {
		printlnFn("Nothing submitted yet")
		return nil
	}
	printlnFn(fmt.Sprintf("Job %s: %s", a.lastJob.JobID, a.lastJob.Status))
	if a.lastJob.Error != "" {
		printlnFn("Error:", a.lastJob.Error)
	}
	return nil
}

// Report prints the analysis results of the last finished job. The report
// is gated behind email verification.
func (a *App) Report(ctx context.Context) error {
	if !a.verification.IsVerified(ctx, a.email) {
		a.email = ""
		printlnFn("The report requires a verified email. Type 'verify' first.")
		return nil
	}
	if a.lastJob == nil || len(a.lastJob.Result) == 0 {
		printlnFn("No report available yet")
		return nil
	}

	var pretty map[string]any
	if err := json.Unmarshal(a.lastJob.Result, &pretty); err == nil {
		b, _ := json.MarshalIndent(pretty, "", "  ")
		printlnFn(string(b))
		return nil
	}
	printlnFn(string(a.lastJob.Result))
	return nil
}

func splitPriorities(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
