package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

type smtpTransport struct {
	host     string
	port     int
	username string
	password string
	startTLS bool
}

func (t *smtpTransport) deliver(ctx context.Context, from string, to []string, raw []byte) error {
	addr := net.JoinHostPort(t.host, strconv.Itoa(t.port))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	// The client sets its own deadline on every command, so ctx is enforced by
	// closing the connection under it.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := t.session(conn, from, to, raw); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("smtp %s: %w", addr, ctxErr)
		}
		return err
	}
	return nil
}

func (t *smtpTransport) session(conn net.Conn, from string, to []string, raw []byte) error {
	var c *smtp.Client
	if t.startTLS {
		var err error
		c, err = smtp.NewClientStartTLS(conn, &tls.Config{ServerName: t.host})
		if err != nil {
			conn.Close()
			return fmt.Errorf("starttls: %w", err)
		}
	} else {
		c = smtp.NewClient(conn)
	}
	defer c.Close()

	if t.username != "" {
		if err := c.Auth(sasl.NewPlainClient("", t.username, t.password)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.SendMail(from, to, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	return c.Quit()
}
