package workflow

import (
	"errors"
	"fmt"
)

// Reason is a validation failure. Its text is shown to the user as-is.
type Reason string

const (
	ReasonNoFileSelected     Reason = "No file selected"
	ReasonUnsupportedType    Reason = "Only .txt files allowed"
	ReasonFileTooLarge       Reason = "File too large (max 5MB)"
	ReasonEmptyPrompt        Reason = "Prompt cannot be empty"
	ReasonEmptySummary       Reason = "Summary cannot be empty"
	ReasonInvalidEmailFormat Reason = "Invalid email format"
)

func (r Reason) Error() string {
	return string(r)
}

var (
	// ErrBusy is returned when a command is invoked while another one is in flight.
	ErrBusy = errors.New("another operation is in progress")
	// ErrSuperseded is returned when Reset ran while the command's remote call was outstanding.
	ErrSuperseded = errors.New("operation result discarded after reset")
)

// RemoteError is a failure reported by (or on the way to) the summarize/dispatch service.
// Message is the service-supplied error text, empty when the service gave none.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("remote error (status %d): %s", e.StatusCode, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("remote error: %v", e.Err)
	default:
		return fmt.Sprintf("remote error (status %d)", e.StatusCode)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// remoteMessage returns the service-supplied text carried by err, or fallback.
func remoteMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
