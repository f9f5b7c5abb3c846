package mailer

import (
	"bytes"
	"fmt"
	"net/mail"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// compose encodes msg as a MIME message: text part, HTML part rendered from
// the markdown summary, and an optional .docx copy.
func (m *implMailer) compose(msg Message, now time.Time) ([]byte, error) {
	var html bytes.Buffer
	if err := markdown.Convert([]byte(msg.Summary), &html); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	to := make([]mail.Address, 0, len(msg.Recipients))
	for _, addr := range msg.Recipients {
		to = append(to, mail.Address{Address: addr})
	}

	builder := enmime.Builder().
		From(m.cfg.FromName, m.cfg.From).
		ToAddrs(to).
		Subject(m.cfg.Subject).
		Date(now).
		Text([]byte(msg.Summary)).
		HTML(html.Bytes())

	if m.cfg.AttachDocx {
		doc, err := summaryToDocx(m.cfg.Subject, msg.Summary)
		if err != nil {
			return nil, fmt.Errorf("build docx: %w", err)
		}
		builder = builder.AddAttachment(doc, docxContentType, "summary.docx")
	}

	part, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build message: %w", err)
	}

	var raw bytes.Buffer
	if err := part.Encode(&raw); err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return raw.Bytes(), nil
}
