package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// writeSummary saves the summary as <output>/<name>.md and returns its path.
func (p *implProcessor) writeSummary(ctx context.Context, name, summary string) (string, error) {
	if err := os.MkdirAll(p.cfg.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	mdPath := filepath.Join(p.cfg.Output, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", err
	}

	p.logger.Debug(ctx, "Summary written: %s", mdPath)
	return mdPath, nil
}

// moveToArchived moves the processed transcript out of the inbox
func (p *implProcessor) moveToArchived(ctx context.Context, transcriptPath string) error {
	if err := os.MkdirAll(p.cfg.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Archived, filepath.Base(transcriptPath))
	p.logger.Info(ctx, "Archiving transcript: %s -> %s", transcriptPath, destPath)

	if err := os.Rename(transcriptPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
