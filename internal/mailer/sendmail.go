package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/nguyentantai21042004/recap-mailer/pkg/executor"
)

// sendmailTransport pipes the message into a local sendmail-compatible binary.
type sendmailTransport struct {
	path     string
	executor executor.Executor
}

func (t *sendmailTransport) deliver(ctx context.Context, from string, to []string, raw []byte) error {
	args := append([]string{"-i", "-f", from, "--"}, to...)
	if _, err := t.executor.Execute(ctx, bytes.NewReader(raw), t.path, args...); err != nil {
		return fmt.Errorf("sendmail: %w", err)
	}
	return nil
}
