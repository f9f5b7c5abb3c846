package processor

import "context"

// Processor runs the summary workflow unattended for one transcript file.
type Processor interface {
	Process(ctx context.Context, transcriptPath string) error
}
