// Package common defines shared constants and sentinel errors used across
// BidSmart client components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors shared by the workflow and verification clients.
	ErrUnavailable  = errors.New("service unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEncoding marks a document whose content could not be read while
	// preparing the submission payload.
	ErrEncoding = errors.New("unable to read document")

	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation failed")
)
