package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLogger_format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, Options{Format: "text"}).Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text output, got %s", buf.String())
	}

	buf.Reset()
	newLogger(&buf, Options{}).Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected json output, got %s", buf.String())
	}

	buf.Reset()
	newLogger(&buf, Options{Level: "error"}).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info record should be filtered at error level: %s", buf.String())
	}
}

func TestNew_writes_log_file(t *testing.T) {
	file := filepath.Join(t.TempDir(), "addon.log")
	New(Options{Level: "info", File: file}).Info("catalog reloaded")

	b, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(b), "catalog reloaded") {
		t.Errorf("log file missing record: %s", b)
	}
}
