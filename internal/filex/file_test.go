package filex

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpen_CapturesMetadata(t *testing.T) {
	path := writeFile(t, "proposal.pdf", []byte("%PDF-1.4 test"))

	f, err := Open(path)
	require.NoError(t, err)

	require.Equal(t, "proposal.pdf", f.Name())
	require.Equal(t, int64(13), f.Size())
	require.Equal(t, "application/pdf", f.MIMEType())
}

func TestOpen_UnknownExtension(t *testing.T) {
	path := writeFile(t, "notes.xyzdoc", []byte("abc"))

	f, err := Open(path)
	require.NoError(t, err)
	require.Empty(t, f.MIMEType())
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestLocalFile_Open_ReadsContent(t *testing.T) {
	path := writeFile(t, "doc.docx", []byte("document body"))

	f, err := Open(path)
	require.NoError(t, err)

	r, err := f.Open()
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("document body"), data)
}
