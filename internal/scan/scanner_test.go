package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestScanDir(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	touch(t, filepath.Join(root, "old.txt"), base)
	touch(t, filepath.Join(root, "nested", "new.zip"), base.Add(2*time.Hour))
	touch(t, filepath.Join(root, "mid.TXT"), base.Add(time.Hour))
	touch(t, filepath.Join(root, "notes.md"), base.Add(3*time.Hour))
	touch(t, filepath.Join(root, "__MACOSX", "chat.txt"), base.Add(4*time.Hour))
	touch(t, filepath.Join(root, "._chat.txt"), base.Add(5*time.Hour))

	files, err := ScanDir(root)
	req.NoError(err)
	req.Len(files, 3)
	req.Equal(filepath.Join(root, "nested", "new.zip"), files[0].Path)
	req.Equal("zip", files[0].Kind)
	req.Equal(filepath.Join(root, "mid.TXT"), files[1].Path)
	req.Equal("txt", files[1].Kind)
	req.Equal(filepath.Join(root, "old.txt"), files[2].Path)
	req.Equal(int64(1), files[2].Size)
}

func TestScanDir_MissingRoot(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestScanDir_Empty(t *testing.T) {
	files, err := ScanDir(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, files)
}
