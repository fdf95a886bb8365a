package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

const chat = "3/14/23, 9:00 PM - Alex: hey\n3/14/23, 9:01 PM - Sam: hi\n"

type entry struct {
	name, body string
}

func zipOf(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLoadBytes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	tests := []struct {
		name    string
		file    string
		data    []byte
		text    string
		entry   string
		archive bool
		err     error
	}{
		{name: "plain text", file: "WhatsApp Chat with Sam.txt", data: []byte(chat), text: chat},
		{name: "text without extension", file: "upload", data: []byte(chat), text: chat},
		{
			name:    "zip skips resource forks",
			file:    "export.zip",
			data:    zipOf(t, entry{"__MACOSX/._chat.txt", "junk"}, entry{"IMG-0001.jpg", "jpeg"}, entry{"WhatsApp Chat with Sam.txt", chat}),
			text:    chat,
			entry:   "WhatsApp Chat with Sam.txt",
			archive: true,
		},
		{
			name:    "zip takes first text entry",
			file:    "export.zip",
			data:    zipOf(t, entry{"a.txt", "first"}, entry{"b.txt", "second"}),
			text:    "first",
			entry:   "a.txt",
			archive: true,
		},
		{
			name: "zip without text",
			file: "export.zip",
			data: zipOf(t, entry{"IMG-0001.jpg", "jpeg"}),
			err:  ErrNoTranscript,
		},
		{name: "image", file: "pic.png", data: png, err: ErrUnsupported},
	}
	l := NewLoader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			tr, err := l.LoadBytes(tt.file, tt.data)
			if tt.err != nil {
				req.ErrorIs(err, tt.err)
				var re *ReadError
				req.ErrorAs(err, &re)
				req.Equal(tt.file, re.Path)
				return
			}
			req.NoError(err)
			req.Equal(tt.text, tr.Text)
			req.Equal(tt.file, tr.Name)
			req.Equal(tt.archive, tr.Archive)
			req.Equal(tt.entry, tr.Entry)
		})
	}
}

func TestLoad_File(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "chat.txt")
	req.NoError(os.WriteFile(path, []byte(chat), 0o644))

	tr, err := NewLoader(nil).Load(path)
	req.NoError(err)
	req.Equal(chat, tr.Text)
	req.Equal(path, tr.Path)
	req.Equal("chat.txt", tr.Name)
}

func TestLoad_DirectoryPicksNewest(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	old := filepath.Join(dir, "old.txt")
	newer := filepath.Join(dir, "new.zip")
	req.NoError(os.WriteFile(old, []byte("old"), 0o644))
	req.NoError(os.WriteFile(newer, zipOf(t, entry{"chat.txt", chat}), 0o644))
	past := time.Now().Add(-time.Hour)
	req.NoError(os.Chtimes(old, past, past))

	tr, err := NewLoader(nil).Load(dir)
	req.NoError(err)
	req.Equal(newer, tr.Path)
	req.True(tr.Archive)
	req.Equal(chat, tr.Text)
}

func TestLoad_Errors(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	_, err := NewLoader(nil).Load(filepath.Join(dir, "missing.txt"))
	req.ErrorIs(err, os.ErrNotExist)

	_, err = NewLoader(nil).Load(dir)
	req.ErrorIs(err, ErrEmptyDir)

	zipPath := filepath.Join(dir, "media.zip")
	req.NoError(os.WriteFile(zipPath, zipOf(t, entry{"a.jpg", "x"}), 0o644))
	_, err = NewLoader(nil).Load(zipPath)
	req.ErrorIs(err, ErrNoTranscript)
	var re *ReadError
	req.ErrorAs(err, &re)
	req.Equal(zipPath, re.Path)
}
