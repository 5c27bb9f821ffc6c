package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, home string) *slog.Logger {
	inner := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewRedactingHandler(inner, home))
}

// TestRedactingHandler_ShortensHomePaths tests path rewriting.
func TestRedactingHandler_ShortensHomePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "path under home", value: "/home/alice/work/structure.md", want: "path=~/work/structure.md"},
		{name: "home itself", value: "/home/alice", want: "path=~"},
		{name: "sibling prefix", value: "/home/alicex/file", want: "path=/home/alicex/file"},
		{name: "unrelated path", value: "/tmp/out", want: "path=/tmp/out"},
		{name: "relative path", value: "out/system", want: "path=out/system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			newTestLogger(&buf, "/home/alice/").Info("scan", "path", tt.value)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, buf.String())
			}
		})
	}
}

// TestRedactingHandler_EmptyHome tests that path shortening can be disabled.
func TestRedactingHandler_EmptyHome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newTestLogger(&buf, "").Info("scan", "path", "/home/alice/work")
	if !strings.Contains(buf.String(), "path=/home/alice/work") {
		t.Errorf("expected unchanged path, got %q", buf.String())
	}
}

// TestRedactingHandler_MasksSecrets tests key-based masking.
func TestRedactingHandler_MasksSecrets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    string
		masked bool
	}{
		{key: "password", masked: true},
		{key: "GITHUB_TOKEN", masked: true},
		{key: "api_key", masked: true},
		{key: "client_secret", masked: true},
		{key: "private_key_path", masked: true},
		{key: "path", masked: false},
		{key: "keyboard", masked: false},
		{key: "lang", masked: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			newTestLogger(&buf, "").Info("env", tt.key, "s3cr3t")
			hidden := !strings.Contains(buf.String(), "s3cr3t")
			if hidden != tt.masked {
				t.Errorf("key %q: masked=%v, want %v (%q)", tt.key, hidden, tt.masked, buf.String())
			}
		})
	}
}

// TestRedactingHandler_WithAttrs tests attributes added up front.
func TestRedactingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, "/home/alice").With("root", "/home/alice/gen", "token", "abc")
	logger.Info("verify")

	out := buf.String()
	if !strings.Contains(out, "root=~/gen") {
		t.Errorf("expected shortened root, got %q", out)
	}
	if strings.Contains(out, "abc") {
		t.Errorf("expected masked token, got %q", out)
	}
}

// TestRedactingHandler_WithGroup tests nested groups.
func TestRedactingHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newTestLogger(&buf, "/home/alice").WithGroup("run")
	logger.Info("verify", slog.Group("input", slog.String("file", "/home/alice/s.md"), slog.String("password", "x1")))

	out := buf.String()
	if !strings.Contains(out, "run.input.file=~/s.md") {
		t.Errorf("expected grouped shortened path, got %q", out)
	}
	if strings.Contains(out, "x1") {
		t.Errorf("expected masked password, got %q", out)
	}
}

// TestNewLogger tests the level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet logger drops debug and info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")

		out := buf.String()
		if strings.Contains(out, "msg=debug") || strings.Contains(out, "msg=info") {
			t.Errorf("unexpected low-level output %q", out)
		}
		if !strings.Contains(out, "msg=warn") {
			t.Errorf("expected warning, got %q", out)
		}
	})

	t.Run("verbose logger keeps debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewLogger(&buf, true).Debug("debug")
		if !strings.Contains(buf.String(), "msg=debug") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})
}

// TestNewJSONLogger tests JSON output.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONLogger(&buf, true).Info("verify", "secret", "v", "score", 91.5)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["secret"] != MaskValue {
		t.Errorf("expected masked secret, got %v", got["secret"])
	}
	if got["score"] != 91.5 {
		t.Errorf("expected score 91.5, got %v", got["score"])
	}
}

// TestNewRedactingHandler_NilHandler tests the default fallback.
func TestNewRedactingHandler_NilHandler(t *testing.T) {
	t.Parallel()

	if h := NewRedactingHandler(nil, ""); h.handler == nil {
		t.Error("expected default handler")
	}
}
