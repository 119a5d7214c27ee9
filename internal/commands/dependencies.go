package commands

import (
	"os"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/coinchat/internal/api"
	"github.com/diogo/coinchat/internal/config"
	"github.com/diogo/coinchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(analyzer api.AnalyzerInterface, cfg config.Config) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Analyzer replaces the HTTP client built from the config when set.
	Analyzer api.AnalyzerInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard copies text to the system clipboard.
	Clipboard func(text string) error

	// IsTerminal reports whether stdout is a terminal.
	IsTerminal func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(analyzer api.AnalyzerInterface, cfg config.Config) error {
	return tui.RunChat(analyzer, cfg)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:        &DefaultTUI{},
		Clipboard:  clipboard.WriteAll,
		IsTerminal: isStdoutTTY,
	}
}

// newAnalyzer returns the injected analyzer or a client for cfg.
// The returned func releases the client.
func (d *Dependencies) newAnalyzer(cfg config.Config) (api.AnalyzerInterface, func(), error) {
	if d.Analyzer != nil {
		return d.Analyzer, func() {}, nil
	}

	client, err := api.NewClient(
		api.WithBaseURL(cfg.ServerURL),
		api.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		api.WithProxy(cfg.Proxy),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

func (d *Dependencies) terminal() bool {
	if d.IsTerminal == nil {
		return false
	}
	return d.IsTerminal()
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
