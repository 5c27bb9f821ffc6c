package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MaskValue replaces the values of secret attributes.
const MaskValue = "***REDACTED***"

// secretKeywords mark attribute keys whose values are never logged.
// Environment overrides and .env files can carry such values.
var secretKeywords = []string{
	"password", "passwd", "secret", "token", "credential", "api_key", "apikey", "private",
}

// RedactingHandler wraps an slog.Handler. String attributes holding paths
// under home are rewritten to start with "~", and attributes with secret
// keys are masked.
type RedactingHandler struct {
	handler slog.Handler
	home    string
}

// NewRedactingHandler wraps handler. An empty home disables path
// shortening; a nil handler uses slog.Default().Handler().
func NewRedactingHandler(handler slog.Handler, home string) *RedactingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if home != "" {
		home = filepath.Clean(home)
	}
	return &RedactingHandler{handler: handler, home: home}
}

// Enabled delegates to the wrapped handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redact(a))
		return true
	})
	return h.handler.Handle(ctx, out)
}

// WithAttrs returns a handler with the rewritten attributes added.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redact(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redacted), home: h.home}
}

// WithGroup returns a handler with the given group name.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name), home: h.home}
}

func (h *RedactingHandler) redact(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = h.redact(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if isSecretKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, h.shortenPath(a.Value.String()))
	}
	return a
}

// shortenPath replaces a leading home directory with "~".
func (h *RedactingHandler) shortenPath(s string) string {
	if h.home == "" || h.home == string(filepath.Separator) {
		return s
	}
	if s == h.home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(s, h.home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return s
}

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, kw := range secretKeywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}

// NewLogger creates a text logger writing to w. verbose selects the Debug
// level; otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewTextHandler(w, handlerOptions(verbose)), userHome()))
}

// NewJSONLogger is NewLogger with JSON output.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewRedactingHandler(slog.NewJSONHandler(w, handlerOptions(verbose)), userHome()))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
