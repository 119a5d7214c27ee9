package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/coinchat/internal/chat"
	"github.com/diogo/coinchat/internal/config"
	apierrors "github.com/diogo/coinchat/internal/errors"
	"github.com/diogo/coinchat/internal/logger"
	"github.com/diogo/coinchat/internal/models"
	"github.com/diogo/coinchat/internal/render"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText      = lipgloss.Color("#c0caf5")
	colorTextDim   = lipgloss.Color("#565f89")
	colorTextMute  = lipgloss.Color("#3b4261")
	colorSuccess   = lipgloss.Color("#9ece6a")
	colorPrimary   = lipgloss.Color("#7aa2f7")
	colorSecondary = lipgloss.Color("#bb9af7")
	colorError     = lipgloss.Color("#f7768e")
	colorWarning   = lipgloss.Color("#e0af68")
)

// Styles matching the chat TUI
var (
	userLabelStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	userBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSecondary).
			Foreground(colorText).
			Padding(0, 1)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginTop(1)

	botBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Padding(0, 1)

	failedBubbleStyle = botBubbleStyle.
				BorderForeground(colorError).
				Foreground(colorError)
)

// queryFlags are the one-shot output options
type queryFlags struct {
	raw    bool
	output string
	copy   bool
}

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + s.frame) % len(gradientColors)
		charIdx := (i + s.frame/2) % len(barChars)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(s.out, "\r\033[K%s %s %s %s", spinnerChar, bar.String(), msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// console adapts a one-shot run to the chat controller. The symbol comes
// from the command line; bubbles are collected and printed once settled.
type console struct {
	value   string
	bubbles []*models.Bubble
	errOut  io.Writer
}

func (c *console) Value() string { return c.value }

func (c *console) SetValue(value string) { c.value = value }

func (c *console) Append(b *models.Bubble) { c.bubbles = append(c.bubbles, b) }

func (c *console) ScrollToBottom() {}

func (c *console) Alert(message string) {
	warn := lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	fmt.Fprintln(c.errOut, warn.Render("⚠ "+message))
}

// runQuery analyzes a single symbol and prints the exchange
func runQuery(cmd *cobra.Command, deps *Dependencies, g *globalFlags, q *queryFlags, symbol string) error {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	decorated := !q.raw && deps.terminal()

	analyzer, release, err := deps.newAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer release()

	con := &console{value: symbol, errOut: stderr}
	ctrl := chat.NewController(analyzer, con, con, con, chat.WithAnalyzeOptions(cfg.AnalyzeOptions()))

	ex, err := ctrl.Begin()
	if err != nil {
		return err
	}

	if cfg.Verbose && !q.raw {
		fmt.Fprintf(stderr, "[verbose] Server: %s\n", cfg.ServerURL)
	}

	var spin *spinner
	if decorated {
		spin = newSpinner(stderr, ex.Bot.Text())
		spin.start()
	}

	startTime := time.Now()
	outcome := ctrl.Analyze(context.Background(), ex)
	requestDuration := time.Since(startTime)

	if spin != nil {
		if outcome.OK() {
			spin.stopWithSuccess("Done")
		} else {
			spin.stopWithError()
		}
	}

	ctrl.Settle(ex, outcome)
	logger.Debug("one-shot analyze", "symbol", ex.Symbol, "outcome", outcome.Kind.String(), "took", requestDuration)

	if cfg.Verbose && !q.raw {
		fmt.Fprintf(stderr, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
		if !outcome.OK() {
			fmt.Fprintln(stderr, formatErrorMessage(outcome.Err, "Analysis failed", cfg))
		}
	}

	text := ex.Bot.Text()

	if decorated {
		printExchange(stdout, con.bubbles, outcome.OK(), cfg)
	} else {
		fmt.Fprintln(stdout, text)
	}

	if !outcome.OK() {
		return errAnalysisFailed
	}

	if q.copy || cfg.CopyToClipboard {
		copyToClipboard(stderr, deps, text)
	}

	if q.output != "" {
		if err := os.WriteFile(q.output, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !q.raw {
			successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Prediction saved to %s", q.output),
			)
			fmt.Fprintln(stderr, successMsg)
		}
	}

	return nil
}

func copyToClipboard(stderr io.Writer, deps *Dependencies, text string) {
	if deps.Clipboard == nil {
		return
	}
	if err := deps.Clipboard(text); err != nil {
		// Log warning but don't fail
		warnMsg := lipgloss.NewStyle().Foreground(colorError).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		)
		fmt.Fprintln(stderr, warnMsg)
		logger.Warn("clipboard copy failed", "err", err)
		return
	}
	clipMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard")
	fmt.Fprintln(stderr, clipMsg)
}

// printExchange renders the settled bubbles the way the chat panel does
func printExchange(out io.Writer, bubbles []*models.Bubble, ok bool, cfg config.Config) {
	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	for _, b := range bubbles {
		if b.Role() == models.RoleUser {
			fmt.Fprintln(out, userLabelStyle.Render("● You"))
			fmt.Fprintln(out, userBubbleStyle.Render(b.Text()))
			continue
		}

		fmt.Fprintln(out, botLabelStyle.Render("✦ Analyst"))
		if !ok {
			fmt.Fprintln(out, failedBubbleStyle.Width(bubbleWidth).Render(b.Text()))
			continue
		}
		rendered := render.BubbleText(b.Text(), render.OptionsFromConfig(cfg, contentWidth))
		fmt.Fprintln(out, botBubbleStyle.Width(bubbleWidth).Render(rendered))
	}
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, action string, cfg config.Config) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", action, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Hint: Check that the analysis server is running at %s", cfg.ServerURL)))
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The server answered with something other than a prediction"))
	case apierrors.IsAPIError(err) && apierrors.GetDetail(err) == "":
		sb.WriteString(dimStyle.Render("\n  Hint: The server gave no reason; check its logs"))
	}

	return sb.String()
}
