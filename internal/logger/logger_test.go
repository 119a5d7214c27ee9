package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput_Levels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")
	defer Close()

	Debug("debug message")
	Info("info message")
	Warn("warn message", "symbol", "BTC")
	Error("error message", "err", "boom")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("records below warn should be dropped:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "symbol=BTC") {
		t.Errorf("warn record missing:\n%s", out)
	}
	if !strings.Contains(out, "error message") || !strings.Contains(out, "err=boom") {
		t.Errorf("error record missing:\n%s", out)
	}
}

func TestInit_File(t *testing.T) {
	dir := t.TempDir()

	if err := Init(Config{Enabled: true, Level: "debug", File: "logs/coinchat.log"}, dir); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}

	Debug("written to file", "symbol", "ETH")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "logs", "coinchat.log"))
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content = %q", string(data))
	}
}

func TestInit_Disabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disabled.log")

	if err := Init(Config{Enabled: false, File: path}, dir); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	Error("should not be written")
	Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled logger should not create a file")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"DEBUG":   "DEBUG",
		"warn":    "WARN",
		"warning": "WARN",
		"error":   "ERROR",
		"info":    "INFO",
		"":        "INFO",
		"bogus":   "INFO",
	}

	for input, want := range tests {
		if got := parseLevel(input).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("/var/log/x.log", "/cfg"); got != "/var/log/x.log" {
		t.Errorf("absolute path changed: %s", got)
	}
	if got := expandPath("x.log", "/cfg"); got != filepath.Join("/cfg", "x.log") {
		t.Errorf("relative path = %s", got)
	}
	if got := expandPath("x.log", ""); got != "x.log" {
		t.Errorf("relative path without dir = %s", got)
	}
}
