package testutil

import (
	"io"
	"net"
	"strconv"
	"sync"
	"testing"

	"github.com/emersion/go-smtp"
)

// ReceivedMessage is one message accepted by the test SMTP server.
type ReceivedMessage struct {
	From string
	To   []string
	Data []byte
}

// memoryBackend stores every delivered message in memory.
type memoryBackend struct {
	mu       sync.Mutex
	messages []ReceivedMessage
}

func (b *memoryBackend) NewSession(*smtp.Conn) (smtp.Session, error) {
	return &memorySession{backend: b}, nil
}

type memorySession struct {
	backend *memoryBackend
	from    string
	to      []string
}

func (s *memorySession) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	return nil
}

func (s *memorySession) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *memorySession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.backend.messages = append(s.backend.messages, ReceivedMessage{
		From: s.from,
		To:   s.to,
		Data: data,
	})
	return nil
}

func (s *memorySession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *memorySession) Logout() error {
	return nil
}

// SMTPServer is an in-memory SMTP server listening on a random local port.
type SMTPServer struct {
	Host    string
	Port    int
	backend *memoryBackend
}

// NewSMTPServer starts a server that is closed when the test ends.
func NewSMTPServer(t *testing.T) *SMTPServer {
	t.Helper()

	be := &memoryBackend{}
	s := smtp.NewServer(be)
	s.Domain = "localhost"
	s.AllowInsecureAuth = true

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	go func() {
		_ = s.Serve(listener)
	}()
	t.Cleanup(func() {
		_ = s.Close()
	})

	host, portStr, _ := net.SplitHostPort(listener.Addr().String())
	port, _ := strconv.Atoi(portStr)

	return &SMTPServer{Host: host, Port: port, backend: be}
}

// Messages returns a copy of every message received so far.
func (s *SMTPServer) Messages() []ReceivedMessage {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	return append([]ReceivedMessage(nil), s.backend.messages...)
}
