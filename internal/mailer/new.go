package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
	"github.com/nguyentantai21042004/recap-mailer/pkg/executor"
)

type implMailer struct {
	cfg       config.MailConfig
	transport transport
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Mailer delivering through the transport selected by cfg.Transport.
func New(cfg config.MailConfig, exec executor.Executor, log logger.Logger) (Mailer, error) {
	var t transport
	switch cfg.Transport {
	case "smtp":
		t = &smtpTransport{
			host:     cfg.Host,
			port:     cfg.Port,
			username: cfg.Username,
			password: cfg.Password,
			startTLS: cfg.StartTLS,
		}
	case "sendmail":
		t = &sendmailTransport{path: cfg.SendmailPath, executor: exec}
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}

	return &implMailer{
		cfg:       cfg,
		transport: t,
		logger:    log,
		now:       time.Now,
	}, nil
}

// Send composes the summary email and delivers it to every recipient.
func (m *implMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.Recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	raw, err := m.compose(msg, m.now())
	if err != nil {
		return err
	}

	m.logger.Info(ctx, "Delivering summary (%d bytes) to %d recipient(s) via %s", len(raw), len(msg.Recipients), m.cfg.Transport)
	if err := m.transport.deliver(ctx, m.cfg.From, msg.Recipients, raw); err != nil {
		return fmt.Errorf("deliver via %s: %w", m.cfg.Transport, err)
	}
	return nil
}
