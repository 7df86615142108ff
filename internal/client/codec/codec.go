// Package codec converts raw documents into the transport-safe encoded
// form embedded in workflow run requests.
package codec

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/dangolden/bidsmart/internal/client/models"
	"github.com/dangolden/bidsmart/internal/common"
)

// Progress is invoked as each file in a batch starts encoding. index is
// zero-based; total is the batch length.
type Progress func(index, total int, filename string)

// EstimateEncodedSize models the ~33% expansion of base64 encoding,
// rounded up. It is used for pre-flight admission checks only, never as
// an exact transport limit.
func EstimateEncodedSize(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return (n*133 + 99) / 100
}

// Encode reads the full content of f and returns its encoded form.
// Filename and MIME type are copied verbatim; Size is the raw byte length.
func Encode(f models.DocumentFile) (models.EncodedDocument, error) {
	r, err := f.Open()
	if err != nil {
		return models.EncodedDocument{}, fmt.Errorf("%w %s: %v", common.ErrEncoding, f.Name(), err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return models.EncodedDocument{}, fmt.Errorf("%w %s: %v", common.ErrEncoding, f.Name(), err)
	}

	return models.EncodedDocument{
		Filename: f.Name(),
		MIMEType: f.MIMEType(),
		Content:  base64.StdEncoding.EncodeToString(data),
		Size:     int64(len(data)),
	}, nil
}

// EncodeBatch encodes files sequentially, preserving input order. If any
// file fails, the whole batch fails and already-encoded documents are
// discarded. onProgress may be nil.
func EncodeBatch(files []models.DocumentFile, onProgress Progress) ([]models.EncodedDocument, error) {
	docs := make([]models.EncodedDocument, 0, len(files))
	for i, f := range files {
		if onProgress != nil {
			onProgress(i, len(files), f.Name())
		}
		doc, err := Encode(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
