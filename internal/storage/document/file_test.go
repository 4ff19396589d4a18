package document_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_sync/internal/storage/document"
)

func TestFile_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>old</html>"), 0o644))
	f := document.New(path)

	got, err := f.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>old</html>", got)

	require.NoError(t, f.Write(context.Background(), "<html>新しい</html>"))
	got, err = f.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>新しい</html>", got)
}

func TestFile_ReadMissing(t *testing.T) {
	_, err := document.New(filepath.Join(t.TempDir(), "absent.html")).Read(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}
