package open

import (
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/ris/internal/metric"
	"github.com/stretchr/testify/require"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		line   int
		args   []string
	}{
		{"vim", 12, []string{"vim", "+12", "chat.txt"}},
		{"/usr/bin/nvim", 3, []string{"/usr/bin/nvim", "+3", "chat.txt"}},
		{"code", 7, []string{"code", "--goto", "chat.txt:7"}},
		{"less", 0, []string{"less", "+1", "chat.txt"}},
		{"nano", 4, []string{"nano", "+4", "chat.txt"}},
		{"emacs", 9, []string{"emacs", "chat.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			cmd := editorCommand(tt.editor, "chat.txt", tt.line)
			require.Equal(t, tt.args, cmd.Args)
		})
	}
}

func TestSessionLine(t *testing.T) {
	req := require.New(t)
	sessions := []metric.Session{{Line: 1}, {Line: 40}}

	line, err := SessionLine(sessions, 2)
	req.NoError(err)
	req.Equal(40, line)

	_, err = SessionLine(sessions, 0)
	req.Error(err)
	_, err = SessionLine(sessions, 3)
	req.ErrorContains(err, "chat has 2")
}

func TestOpenAt_MissingFile(t *testing.T) {
	err := OpenAt(filepath.Join(t.TempDir(), "missing.txt"), 1)
	require.ErrorContains(t, err, "file not found")
}
