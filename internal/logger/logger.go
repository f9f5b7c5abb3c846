package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	mu     sync.Mutex
	out    io.Writer
	logger *log.Logger
	level  string
	format string
}

// New creates a text Logger writing to stdout.
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level, FormatText)
}

// NewWithWriter creates a Logger writing to w in the given format ("text" or "json").
func NewWithWriter(w io.Writer, level, format string) Logger {
	format = strings.ToLower(format)
	if format != FormatJSON {
		format = FormatText
	}
	return &implLogger{
		out:    w,
		logger: log.New(w, "", log.LstdFlags),
		level:  strings.ToLower(level),
		format: format,
	}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return NewWithWriter(io.Discard, "error", FormatText)
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) write(level, msg string, args []interface{}) {
	if !l.shouldLog(level) {
		return
	}

	text := fmt.Sprintf(msg, args...)
	if l.format == FormatText {
		l.logger.Printf("[%s] %s", strings.ToUpper(level), text)
		return
	}

	line, err := json.Marshal(struct {
		Time  string `json:"time"`
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}{
		Time:  time.Now().Format(time.RFC3339),
		Level: level,
		Msg:   text,
	})
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(line, '\n'))
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write("debug", msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write("info", msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write("warn", msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write("error", msg, args)
}
