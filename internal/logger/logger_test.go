package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 6_000_000, time.UTC)
	got := format(ts, "WARN", "client", "status %d", []Field{RequestID("abc"), Status(502)}, 502)
	want := "[13:04:05.006] WARN [client] status 502 [request_id=abc status=502]\n"
	if got != want {
		t.Errorf("format() = %q, want %q", got, want)
	}

	got = format(ts, "INFO", "", "100% done", nil)
	if !strings.Contains(got, "[main] 100% done") {
		t.Errorf("format() without args should keep message verbatim, got %q", got)
	}
}

func TestVerboseGating(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewWithWriter("session", false, &buf)
	quiet.Debug("hidden")
	quiet.Info("hidden")
	quiet.Warn("shown")
	quiet.ErrorWithFields("failed", []Field{Error(errors.New("boom"))})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info lines logged while not verbose: %q", out)
	}
	if !strings.Contains(out, "WARN [session] shown") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("missing error field: %q", out)
	}

	buf.Reset()
	loud := NewWithWriter("session", true, &buf).WithComponent("viewer")
	loud.InfoWithFields("opened", []Field{F("title", "AFD")})
	if !strings.Contains(buf.String(), "INFO [viewer] opened [title=AFD]") {
		t.Errorf("unexpected verbose output: %q", buf.String())
	}
}

func TestRedirectToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lrview.log")
	restore, err := RedirectToFile(path)
	if err != nil {
		t.Fatalf("RedirectToFile() error = %v", err)
	}
	New("tui", nil).Warn("kept off screen")
	if err := restore(); err != nil {
		t.Fatalf("restore() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "kept off screen") {
		t.Errorf("log file missing line: %q", data)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.Error("ignored")
	Nop().Error("ignored")
}
