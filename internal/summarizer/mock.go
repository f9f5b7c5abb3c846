package summarizer

import (
	"context"
	"fmt"
	"strings"
)

// mockSummarizer is a local stand-in that never calls a model.
// It echoes the instructions and the first lines of the transcript.
type mockSummarizer struct{}

const mockPreviewLines = 5

func (mockSummarizer) Summarize(_ context.Context, transcript, instructions string) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Meeting summary\n\n")
	fmt.Fprintf(&sb, "_Instructions: %s_\n\n", strings.TrimSpace(instructions))

	lines := strings.Split(strings.TrimSpace(transcript), "\n")
	if len(lines) > mockPreviewLines {
		lines = lines[:mockPreviewLines]
	}
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}
	return sb.String(), nil
}
