package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/coinchat/internal/api"
	"github.com/diogo/coinchat/internal/chat"
	"github.com/diogo/coinchat/internal/config"
	"github.com/diogo/coinchat/internal/logger"
	"github.com/diogo/coinchat/internal/render"
)

// settledMsg carries the outcome of one exchange back to the UI loop
type settledMsg struct {
	exchange *chat.Exchange
	outcome  chat.Outcome
}

// Model represents the TUI state
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl   *chat.Controller
	window *chatWindow
	field  *symbolField
	alert  *alertBanner

	spinner   spinner.Model
	serverURL string

	// State
	pending int // exchanges awaiting their outcome
	ready   bool
	width   int
	height  int
}

// NewChatModel creates a new chat model over the analyzer
func NewChatModel(analyzer api.AnalyzerInterface, cfg config.Config) Model {
	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		UpdateTheme()
	}

	window := newChatWindow(render.OptionsFromConfig(cfg, 80))
	field := newSymbolField()
	alert := &alertBanner{}

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		ctx:       ctx,
		cancel:    cancel,
		ctrl:      chat.NewController(analyzer, field, window, alert, chat.WithAnalyzeOptions(cfg.AnalyzeOptions())),
		window:    window,
		field:     field,
		alert:     alert,
		spinner:   s,
		serverURL: cfg.ServerURL,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Header panel with border
		inputHeight := 3  // Input panel with border
		statusHeight := 1
		padding := 3

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		m.window.resize(contentWidth, vpHeight)
		m.field.input.Width = contentWidth - 16
		m.ready = true

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		// The alert swallows the key that dismisses it
		if m.alert.active() {
			m.alert.dismiss()
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m.quit()

		case "enter":
			ex, err := m.ctrl.Begin()
			if err != nil {
				return m, nil
			}
			m.pending++
			return m, tea.Batch(m.analyze(ex), m.spinner.Tick)

		case "up":
			m.window.scroll(-1)
			return m, nil
		case "down":
			m.window.scroll(1)
			return m, nil
		case "pgup":
			m.window.scroll(-m.window.viewport.Height)
			return m, nil
		case "pgdown":
			m.window.scroll(m.window.viewport.Height)
			return m, nil
		}

		m.field.input, cmd = m.field.input.Update(msg)
		cmds = append(cmds, cmd)

	case settledMsg:
		m.ctrl.Settle(msg.exchange, msg.outcome)
		m.pending--
		m.window.refresh()

	case spinner.TickMsg:
		if m.pending > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// analyze runs the exchange's request off the UI loop
func (m Model) analyze(ex *chat.Exchange) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		return settledMsg{exchange: ex, outcome: ctrl.Analyze(ctx, ex)}
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("◆ Coin Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.serverURL),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	if len(m.window.bubbles) == 0 {
		sections = append(sections, m.renderWelcome(contentWidth))
	} else {
		sections = append(sections, messagesAreaStyle.Width(contentWidth).Render(m.window.viewport.View()))
	}

	if m.alert.active() {
		notice := m.alert.message + "\n" + hintStyle.Render("press any key")
		sections = append(sections, alertStyle.Width(contentWidth).Render(notice))
	} else {
		input := lipgloss.JoinHorizontal(lipgloss.Left,
			inputLabelStyle.Render("Symbol"),
			m.field.input.View(),
		)
		if m.pending > 0 {
			input = lipgloss.JoinHorizontal(lipgloss.Left, input, "  ",
				loadingStyle.Render(fmt.Sprintf("%s %d pending", m.spinner.View(), m.pending)))
		}
		sections = append(sections, inputPanelStyle.Width(contentWidth).Render(input))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderWelcome(width int) string {
	height := m.window.viewport.Height
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Render("Market predictions on demand"),
		"",
		welcomeStyle.Render("Type a coin pair such as BTCUSDT and press Enter."),
	)
	return messagesAreaStyle.Width(width).Height(height).
		AlignVertical(lipgloss.Center).
		Render(lipgloss.PlaceHorizontal(width-4, lipgloss.Center, content))
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Analyze"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunChat starts the chat TUI
func RunChat(analyzer api.AnalyzerInterface, cfg config.Config) error {
	m := NewChatModel(analyzer, cfg)
	defer m.cancel()

	logger.Quiet()
	defer logger.Restore()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
