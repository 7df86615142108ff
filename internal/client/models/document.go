// Package models defines client-side data models used by the BidSmart CLI.
package models

import "io"

// DocumentFile describes a user-supplied document before encoding.
// Validation inspects the declared size and type without reading the
// content; Open is only called once the file has been admitted.
type DocumentFile interface {
	// Name returns the filename as supplied by the user.
	Name() string

	// MIMEType returns the declared media type. May be empty or wrong;
	// validation falls back to the filename extension.
	MIMEType() string

	// Size returns the raw byte length of the document.
	Size() int64

	// Open returns a reader over the document content.
	Open() (io.ReadCloser, error)
}

// EncodedDocument is the transport-safe form of a document, ready to be
// embedded in a workflow run request. Immutable once created; discarded
// after the submission attempt completes.
type EncodedDocument struct {
	// Filename is copied verbatim from the source file.
	Filename string `json:"filename"`

	// MIMEType is copied verbatim from the source file.
	MIMEType string `json:"mimeType"`

	// Content holds the base64-encoded document bytes.
	Content string `json:"content"`

	// Size is the raw byte length before encoding.
	Size int64 `json:"size"`
}
