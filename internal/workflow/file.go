package workflow

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// TranscriptFile is a handle to a transcript chosen by the user.
type TranscriptFile struct {
	Name     string
	MIMEType string
	Size     int64

	open func() (io.ReadCloser, error)
}

// NewTranscriptFile wraps in-memory content.
func NewTranscriptFile(name, mimeType string, data []byte) *TranscriptFile {
	return &TranscriptFile{
		Name:     name,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// OpenTranscriptFile stats the file at path and sniffs its MIME type from the content.
// The content itself is read lazily by Open.
func OpenTranscriptFile(path string) (*TranscriptFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat transcript: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("transcript %s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect transcript type: %w", err)
	}

	return &TranscriptFile{
		Name:     filepath.Base(path),
		MIMEType: baseMIMEType(mtype),
		Size:     info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// Open returns a reader over the transcript content.
func (f *TranscriptFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, fmt.Errorf("transcript %s has no content", f.Name)
	}
	return f.open()
}

// baseMIMEType reports text content as text/plain, the way a browser types a
// .txt file regardless of what the text looks like. Binary content keeps its
// detected type without parameters.
func baseMIMEType(m *mimetype.MIME) string {
	for p := m; p != nil; p = p.Parent() {
		if p.Is(PlainTextMIME) {
			return PlainTextMIME
		}
	}
	mediaType, _, err := mime.ParseMediaType(m.String())
	if err != nil {
		return m.String()
	}
	if strings.HasPrefix(mediaType, "text/") {
		return PlainTextMIME
	}
	return mediaType
}
