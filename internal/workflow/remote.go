package workflow

import "context"

// Remote is the summarize/dispatch service the workflow talks to.
type Remote interface {
	// Summarize returns the summary of file produced under prompt.
	Summarize(ctx context.Context, file *TranscriptFile, prompt string) (string, error)
	// Dispatch emails summary to recipients and returns the service confirmation.
	Dispatch(ctx context.Context, summary string, recipients []string) (string, error)
}
