// Package cli provides the interactive BidSmart command-line client.
//
// It wires configuration, local state storage, the workflow and
// verification HTTP clients, and an interactive REPL. Typical flow:
// pick documents, submit them for analysis, wait for the job, verify an
// email address, and read the report.
//
// Key features:
//   - Submit a bid-document batch and wait for the analysis job
//   - Verify an email via a one-time code to unlock the report
//   - Show the report of the last finished job
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
