package workflow

import (
	"regexp"
	"strings"
)

const (
	// MaxTranscriptSize is the largest transcript accepted, in bytes.
	MaxTranscriptSize = 5 * 1024 * 1024
	PlainTextMIME     = "text/plain"
	transcriptExt     = ".txt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateFile reports why f cannot be summarized, or nil. The first failing rule wins.
func ValidateFile(f *TranscriptFile) error {
	if f == nil {
		return ReasonNoFileSelected
	}
	if f.MIMEType != PlainTextMIME || !strings.HasSuffix(f.Name, transcriptExt) {
		return ReasonUnsupportedType
	}
	if f.Size > MaxTranscriptSize {
		return ReasonFileTooLarge
	}
	return nil
}

// ParseRecipients splits a comma-separated recipient string into trimmed tokens.
// Order and duplicates are preserved; an empty string yields one empty token.
func ParseRecipients(raw string) []string {
	list := strings.Split(raw, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	return list
}

// ValidateEmails checks that every comma-separated token looks like an email address.
// Empty input is rejected: it parses to a single empty token.
func ValidateEmails(raw string) error {
	for _, addr := range ParseRecipients(raw) {
		if !emailPattern.MatchString(addr) {
			return ReasonInvalidEmailFormat
		}
	}
	return nil
}
