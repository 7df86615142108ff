// Package validation enforces per-document and aggregate admission rules
// before a batch is encoded and submitted.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"

	"github.com/dangolden/bidsmart/internal/client/codec"
	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/common"
)

// Limits holds the admission ceilings. The payload ceiling is deliberately
// below the transport layer's true limit to leave headroom for request
// metadata.
type Limits struct {
	// MaxDocumentBytes caps the raw size of a single document.
	MaxDocumentBytes int64

	// MaxPayloadBytes caps the estimated encoded size of a whole batch.
	MaxPayloadBytes int64

	// MaxDocumentCount caps the number of documents per batch.
	MaxDocumentCount int
}

// DefaultLimits returns the standard submission ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxDocumentBytes: 10 * units.MiB,
		MaxPayloadBytes:  5 * units.MiB,
		MaxDocumentCount: 5,
	}
}

// Accepted document types. A file passes if either its MIME type or its
// extension matches; browsers and desktop environments routinely report
// empty or wrong MIME types.
var allowedMIMETypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
}

// Result is the outcome of an aggregate payload check.
type Result struct {
	Valid   bool
	Message string
}

type Validator struct {
	limits Limits
}

func New(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// Validate checks a single document against the admission policy. Rules
// are evaluated in order and the first violation wins. A nil return means
// the document is admitted. The input is never mutated.
func (v *Validator) Validate(f models.DocumentFile) error {
	if f.Size() > v.limits.MaxDocumentBytes {
		return fmt.Errorf("%w: %s is too large (%s): documents must be %s or smaller",
			common.ErrValidation, f.Name(),
			units.BytesSize(float64(f.Size())), units.BytesSize(float64(v.limits.MaxDocumentBytes)))
	}

	if _, ok := allowedMIMETypes[normalizeMIME(f.MIMEType())]; ok {
		return nil
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(f.Name()))]; ok {
		return nil
	}

	return fmt.Errorf("%w: %s has an unsupported format: only PDF, DOC and DOCX documents are accepted",
		common.ErrValidation, f.Name())
}

// ValidateCount checks the batch count ceiling.
func (v *Validator) ValidateCount(n int) error {
	if n > v.limits.MaxDocumentCount {
		return fmt.Errorf("%w: at most %d documents can be submitted at once",
			common.ErrValidation, v.limits.MaxDocumentCount)
	}
	return nil
}

// CheckPayloadLimits estimates the encoded transport size of the batch and
// rejects it when the estimate exceeds the payload ceiling. An empty batch
// is always valid.
func (v *Validator) CheckPayloadLimits(files []models.DocumentFile) Result {
	var total int64
	for _, f := range files {
		total += codec.EstimateEncodedSize(f.Size())
	}

	if total > v.limits.MaxPayloadBytes {
		return Result{
			Valid: false,
			Message: fmt.Sprintf("selected documents are about %.1fMB after encoding, above the %.0fMB limit: remove a document or attach smaller files",
				float64(total)/float64(units.MiB), float64(v.limits.MaxPayloadBytes)/float64(units.MiB)),
		}
	}
	return Result{Valid: true}
}

// normalizeMIME strips any parameters from a media type, e.g.
// "application/pdf; charset=binary" -> "application/pdf".
func normalizeMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
