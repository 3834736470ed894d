package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// DefaultOptions is the handler configuration used by main.
var DefaultOptions = &slog.HandlerOptions{Level: slog.LevelInfo}

// Err is a shorthand for attaching an error to a log record.
func Err(err error) slog.Attr {
	return slog.Any("error", err)
}

// Handler is a human-oriented slog handler: colored level, message, then
// key=value attrs. Not meant for log aggregation pipelines.
type Handler struct {
	opts  *slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Handler{
		opts: opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format("15:04:05.000"))
	sb.WriteString(" ")
	sb.WriteString(levelString(r.Level))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	for _, attr := range h.attrs {
		h.appendAttr(&sb, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		h.appendAttr(&sb, attr)
		return true
	})
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	if h2.group != "" {
		h2.group += "."
	}
	h2.group += name
	return &h2
}

func (h *Handler) appendAttr(sb *strings.Builder, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	sb.WriteString(" ")
	sb.WriteString(color.New(color.Faint).Sprintf("%s=%v", key, attr.Value.Resolve()))
}

func levelString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint("ERR")
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow).Sprint("WRN")
	case level >= slog.LevelInfo:
		return color.New(color.FgGreen).Sprint("INF")
	default:
		return color.New(color.FgMagenta).Sprint("DBG")
	}
}

var _ slog.Handler = (*Handler)(nil)
