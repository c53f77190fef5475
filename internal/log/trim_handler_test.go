package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTrimHandler tests attribute truncation behavior.
func TestTrimHandler(t *testing.T) {
	t.Parallel()

	t.Run("passes short values unchanged", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 32))

		logger.Info("detail fetched", "appID", "com.example.app")

		output := buf.String()
		if !strings.Contains(output, "com.example.app") {
			t.Errorf("expected value to pass through, got %q", output)
		}
		if strings.Contains(output, TruncationMarker) {
			t.Error("expected no truncation for a short value")
		}
	})

	t.Run("truncates oversized values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 16))

		long := strings.Repeat("abcd", 20)
		logger.Info("detail fetched", "description", long)

		output := buf.String()
		if !strings.Contains(output, TruncationMarker) {
			t.Errorf("expected truncation marker, got %q", output)
		}
		if strings.Contains(output, long) {
			t.Error("expected the full value to be absent")
		}
	})

	t.Run("truncates multibyte values on rune boundaries", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 4))

		logger.Info("detail fetched", "title", "日本語のアプリ")

		output := buf.String()
		if !strings.Contains(output, "日本語の"+TruncationMarker) {
			t.Errorf("expected clean rune-boundary cut, got %q", output)
		}
	})

	t.Run("trims values inside groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 8))

		logger.Info("page parsed", slog.Group("page",
			slog.String("body", strings.Repeat("x", 64)),
		))

		if !strings.Contains(buf.String(), TruncationMarker) {
			t.Error("expected group member to be trimmed")
		}
	})

	t.Run("trims preset attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 8))

		logger.With("snippet", strings.Repeat("y", 64)).Info("ready")

		if !strings.Contains(buf.String(), TruncationMarker) {
			t.Error("expected With attribute to be trimmed")
		}
	})

	t.Run("leaves non-string values alone", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTrimHandler(slog.NewTextHandler(&buf, nil), 2))

		logger.Info("progress", "detailsKnown", 123456)

		if !strings.Contains(buf.String(), "123456") {
			t.Error("expected numeric attribute to pass through")
		}
	})
}

// TestNewLogger tests logger construction and level selection.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("hidden")
		logger.Info("shown")

		output := buf.String()
		if strings.Contains(output, "hidden") {
			t.Error("expected debug output to be suppressed")
		}
		if !strings.Contains(output, "shown") {
			t.Error("expected info output to appear")
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("shown")

		if !strings.Contains(buf.String(), "shown") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("json logger emits json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewJSONLogger(&buf, false)

		logger.Info("shown", "appID", "com.example.app")

		output := buf.String()
		if !strings.HasPrefix(output, "{") {
			t.Errorf("expected JSON output, got %q", output)
		}
		if !strings.Contains(output, `"appID":"com.example.app"`) {
			t.Errorf("expected attribute in JSON output, got %q", output)
		}
	})
}
