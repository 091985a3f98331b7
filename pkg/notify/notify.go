// Package notify delivers short user-facing notices, the terminal and HTTP
// equivalent of toast messages.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// Level is the severity shown to the user.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is one message for the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }
func Error(msg string) Notice   { return Notice{Level: LevelError, Message: msg} }

// Notifier shows notices to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Log writes notices to a structured logger.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger.With("component", "notify")}
}

func (l *Log) Notify(ctx context.Context, n Notice) {
	level := slog.LevelInfo
	if n.Level == LevelError {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, n.Message, "notice", n.Level.String())
}

// Channel buffers notices for a consumer such as an SSE stream or a test.
// A full buffer drops the notice rather than blocking the flow.
type Channel struct {
	ch chan Notice
}

func NewChannel(size int) *Channel {
	return &Channel{ch: make(chan Notice, size)}
}

func (c *Channel) Notify(_ context.Context, n Notice) {
	select {
	case c.ch <- n:
	default:
	}
}

// Drain returns every buffered notice without blocking.
func (c *Channel) Drain() []Notice {
	var out []Notice
	for {
		select {
		case n := <-c.ch:
			out = append(out, n)
		default:
			return out
		}
	}
}

// Console prints coloured notices to a terminal.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	success *color.Color
	failure *color.Color
	info    *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		info:    color.New(color.FgCyan),
	}
}

func (c *Console) Notify(_ context.Context, n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var style *color.Color
	var mark string
	switch n.Level {
	case LevelSuccess:
		style, mark = c.success, "✔"
	case LevelError:
		style, mark = c.failure, "✖"
	default:
		style, mark = c.info, "•"
	}
	_, _ = fmt.Fprintln(c.out, style.Sprintf("%s %s", mark, n.Message))
}

// Multi fans a notice out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) {
	for _, x := range m {
		x.Notify(ctx, n)
	}
}
