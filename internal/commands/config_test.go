package commands

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/coinchat/internal/config"
)

func TestConfigCommand_Show(t *testing.T) {
	setupHome(t)

	stdout, _, err := runCmd(t, testDeps(nil), "", "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(stdout, `"server_url": "http://127.0.0.1:8000"`) {
		t.Errorf("Expected default server in output, got %s", stdout)
	}
}

func TestConfigCommand_Path(t *testing.T) {
	home := setupHome(t)

	stdout, _, err := runCmd(t, testDeps(nil), "", "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	want := filepath.Join(home, ".coinchat", "config.json")
	if strings.TrimSpace(stdout) != want {
		t.Errorf("path = %q, want %q", stdout, want)
	}
}

func TestConfigCommand_Set(t *testing.T) {
	setupHome(t)

	if _, _, err := runCmd(t, testDeps(nil), "", "config", "set", "interval", "15m"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interval != "15m" {
		t.Errorf("Interval = %q, want 15m", cfg.Interval)
	}

	stdout, _, err := runCmd(t, testDeps(nil), "", "config")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"interval": "15m"`) {
		t.Errorf("config output missing interval: %s", stdout)
	}
}

func TestConfigCommand_SetKeepsEnvOutOfFile(t *testing.T) {
	setupHome(t)
	t.Setenv(config.EnvServerURL, "http://from-env:8000")

	if _, _, err := runCmd(t, testDeps(nil), "", "config", "set", "verbose", "true"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	cfg, err := config.LoadFile()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerURL == "http://from-env:8000" {
		t.Error("Environment override should not be saved")
	}
	if !cfg.Verbose {
		t.Error("verbose should be saved")
	}
}

func TestConfigCommand_SetInvalid(t *testing.T) {
	setupHome(t)

	tests := [][]string{
		{"config", "set", "no_such_key", "x"},
		{"config", "set", "lookback_period", "-5"},
		{"config", "set", "server_url"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, _, err := runCmd(t, testDeps(nil), "", args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestConfigCommand_ShowYAML(t *testing.T) {
	setupHome(t)

	stdout, _, err := runCmd(t, testDeps(nil), "", "config", "--yaml")
	if err != nil {
		t.Fatalf("config --yaml failed: %v", err)
	}
	if !strings.Contains(stdout, "server_url:") || !strings.Contains(stdout, "127.0.0.1:8000") {
		t.Errorf("Expected YAML output, got %s", stdout)
	}
	if strings.Contains(stdout, "{") {
		t.Errorf("YAML output should not contain JSON braces: %s", stdout)
	}
}
