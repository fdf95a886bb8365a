package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/ris/internal/scan"
	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

const maxTranscriptSize = 64 << 20 // 64MB

var (
	ErrNoTranscript = errors.New("No .txt file found in the zip archive.")
	ErrEmptyDir     = errors.New("no .txt or .zip transcript found in directory")
	ErrUnsupported  = errors.New("unsupported file type, expected a .txt export or a .zip containing one")
	ErrTooLarge     = errors.New("transcript exceeds 64MB")
)

// ReadError reports a transcript that could not be acquired.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Transcript is the raw text of one chat export.
type Transcript struct {
	Name    string // file name as uploaded or found on disk
	Path    string // empty for uploads
	Text    string
	Archive bool // text came from inside a zip
	Entry   string
}

type Loader struct {
	log logrus.FieldLogger
}

func NewLoader(log logrus.FieldLogger) *Loader {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Loader{log: log}
}

// Load reads path. A directory resolves to its newest transcript.
func (l *Loader) Load(path string) (*Transcript, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	if info.IsDir() {
		files, err := scan.ScanDir(path)
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		if len(files) == 0 {
			return nil, &ReadError{Path: path, Err: ErrEmptyDir}
		}
		l.log.WithFields(logrus.Fields{"dir": path, "candidates": len(files)}).
			Debugf("picked newest transcript %s", files[0].Path)
		path = files[0].Path
		info, err = os.Stat(path)
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
	}

	if info.Size() > maxTranscriptSize {
		return nil, &ReadError{Path: path, Err: ErrTooLarge}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	t, err := l.LoadBytes(filepath.Base(path), data)
	if err != nil {
		var re *ReadError
		if errors.As(err, &re) {
			re.Path = path
		}
		return nil, err
	}
	t.Path = path
	return t, nil
}

// LoadBytes decodes an in-memory upload. The content decides between text
// and zip; the name only breaks ties for undetectable text.
func (l *Loader) LoadBytes(name string, data []byte) (*Transcript, error) {
	mtype := mimetype.Detect(data)
	log := l.log.WithFields(logrus.Fields{"name": name, "mime": mtype.String(), "bytes": len(data)})

	switch {
	case isA(mtype, "application/zip"):
		entry, text, err := readZip(data)
		if err != nil {
			return nil, &ReadError{Path: name, Err: err}
		}
		log.WithField("entry", entry).Debug("loaded transcript from archive")
		return &Transcript{Name: name, Text: text, Archive: true, Entry: entry}, nil

	case isA(mtype, "text/plain"), strings.EqualFold(filepath.Ext(name), ".txt"):
		log.Debug("loaded transcript")
		return &Transcript{Name: name, Text: string(data)}, nil
	}

	log.Debug("rejected transcript")
	return nil, &ReadError{Path: name, Err: ErrUnsupported}
}

func isA(m *mimetype.MIME, want string) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
	}
	return false
}

// readZip returns the first .txt entry in archive order, skipping macOS
// resource forks.
func readZip(data []byte) (string, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", "", fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(f.Name), ".txt") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", "", fmt.Errorf("open %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(io.LimitReader(rc, maxTranscriptSize+1))
		rc.Close()
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", f.Name, err)
		}
		if len(b) > maxTranscriptSize {
			return "", "", ErrTooLarge
		}
		return f.Name, string(b), nil
	}
	return "", "", ErrNoTranscript
}
