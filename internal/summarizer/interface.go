package summarizer

import "context"

// Summarizer turns a meeting transcript into a summary following the user's instructions.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, instructions string) (string, error)
}
