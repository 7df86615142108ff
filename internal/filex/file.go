// Package filex adapts files on the local filesystem to the document model
// used by the submission flow.
package filex

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// LocalFile is a document backed by a file on disk. It implements
// models.DocumentFile: metadata is captured up front, content is read
// only when the codec opens the file.
type LocalFile struct {
	path string
	name string
	size int64
	mime string
}

// Open stats the file at path and captures its metadata. The MIME type is
// resolved from the filename extension; an unknown extension yields an
// empty type, which validation tolerates.
func Open(path string) (*LocalFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return &LocalFile{
		path: path,
		name: filepath.Base(path),
		size: info.Size(),
		mime: mime.TypeByExtension(filepath.Ext(path)),
	}, nil
}

func (f *LocalFile) Name() string { return f.name }

func (f *LocalFile) MIMEType() string { return f.mime }

func (f *LocalFile) Size() int64 { return f.size }

func (f *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
