package render

import (
	"strings"
	"testing"

	"github.com/diogo/coinchat/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines {
		t.Error("expected emoji and newline preservation enabled")
	}
}

func TestOptionsWithWidth(t *testing.T) {
	if got := DefaultOptions().WithWidth(120).Width; got != 120 {
		t.Errorf("expected Width=120, got %d", got)
	}
	if got := DefaultOptions().WithWidth(3).Width; got != minWidth {
		t.Errorf("expected Width clamped to %d, got %d", minWidth, got)
	}
}

func TestBubbleText(t *testing.T) {
	ClearCache()
	opts := DefaultOptions().WithStyle("notty").WithWidth(60)

	out := BubbleText("Prediction for BTCUSDT: BUY (Trend is Up)", opts)

	if !strings.Contains(out, "Prediction for BTCUSDT: BUY (Trend is Up)") {
		t.Errorf("rendered text lost content: %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("rendered text should be trimmed: %q", out)
	}
	if CacheSize() != 1 {
		t.Errorf("expected one pooled option set, got %d", CacheSize())
	}
}

func TestBubbleText_FallbackOnBadStyle(t *testing.T) {
	opts := DefaultOptions().WithStyle("/does/not/exist.json")

	if out := BubbleText("Error: bad symbol", opts); out != "Error: bad symbol" {
		t.Errorf("expected plain fallback, got %q", out)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "light"
	cfg.Markdown.EnableEmoji = false

	opts := OptionsFromConfig(cfg, 70)
	if opts.Style != "light" || opts.EnableEmoji || opts.Width != 70 {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}

	t.Setenv("GLAMOUR_STYLE", "notty")
	if opts := OptionsFromConfig(cfg, 70); opts.Style != "notty" {
		t.Errorf("GLAMOUR_STYLE should win, got %s", opts.Style)
	}
}

func TestTUIThemes(t *testing.T) {
	defer SetTUITheme(DefaultTUITheme)

	if GetTUITheme().Name != DefaultTUITheme {
		t.Errorf("default theme = %s", GetTUITheme().Name)
	}
	if !SetTUITheme("nord") || GetTUITheme().Name != "nord" {
		t.Error("SetTUITheme(nord) failed")
	}
	if SetTUITheme("no-such-theme") {
		t.Error("unknown theme should be rejected")
	}
	if GetTUITheme().Name != "nord" {
		t.Error("unknown theme should not change the active theme")
	}

	names := TUIThemeNames()
	if len(names) != 4 || names[0] != "catppuccin" {
		t.Errorf("TUIThemeNames() = %v", names)
	}
}
