package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

// Process drives one workflow session: generate a summary for the transcript,
// save it, optionally email it, then archive the transcript.
func (p *implProcessor) Process(ctx context.Context, transcriptPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))

	p.logger.Info(ctx, "Processing transcript: %s", transcriptPath)

	file, err := workflow.OpenTranscriptFile(transcriptPath)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}

	session := workflow.NewController(p.remote, p.logger)
	session.SetFile(file)
	session.SetPrompt(p.cfg.Prompt)
	session.SetRecipients(p.cfg.Recipients)

	// Step 1: Generate summary
	if err := session.Generate(ctx); err != nil {
		return fmt.Errorf("generate: %s", session.State().Status.Text)
	}

	// Step 2: Save summary next to the other outputs
	mdPath, err := p.writeSummary(ctx, name, session.State().Summary)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	// Step 3: Email it
	if p.cfg.AutoSend {
		if err := session.Send(ctx); err != nil {
			return fmt.Errorf("send: %s", session.State().Status.Text)
		}
		p.logger.Info(ctx, "Dispatch: %s", session.State().Status.Text)
	}

	// Step 4: Archive the transcript so it is not processed again
	if err := p.moveToArchived(ctx, transcriptPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive transcript: %v", err)
	}

	session.Reset()

	p.logger.Info(ctx, "[DONE] %s -> %s (%s)", name, mdPath, time.Since(startTime).Round(time.Millisecond))
	return nil
}
