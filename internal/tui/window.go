package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/coinchat/internal/models"
	"github.com/diogo/coinchat/internal/render"
)

// chatWindow is the scrolling bubble container. It implements chat.Window.
type chatWindow struct {
	viewport viewport.Model
	bubbles  []*models.Bubble
	opts     render.Options

	// rendered caches glamour output of settled bot bubbles
	rendered map[*models.Bubble]string
}

func newChatWindow(opts render.Options) *chatWindow {
	return &chatWindow{
		viewport: viewport.New(0, 0),
		opts:     opts,
		rendered: make(map[*models.Bubble]string),
	}
}

// Append adds a bubble at the end of the conversation
func (w *chatWindow) Append(b *models.Bubble) {
	w.bubbles = append(w.bubbles, b)
	w.refresh()
}

// ScrollToBottom moves the view to the newest bubble
func (w *chatWindow) ScrollToBottom() {
	w.viewport.GotoBottom()
}

// AtBottom reports whether the newest content is visible
func (w *chatWindow) AtBottom() bool {
	return w.viewport.AtBottom()
}

func (w *chatWindow) resize(width, height int) {
	w.viewport.Width = width
	w.viewport.Height = height
	w.opts = w.opts.WithWidth(w.bubbleWidth() - 4)
	w.rendered = make(map[*models.Bubble]string)
	w.refresh()
}

func (w *chatWindow) scroll(lines int) {
	w.viewport.SetYOffset(w.viewport.YOffset + lines)
}

func (w *chatWindow) bubbleWidth() int {
	width := w.viewport.Width - 6
	if width < 20 {
		width = 20
	}
	return width
}

// refresh re-renders every bubble into the viewport. The scroll offset is
// kept; only ScrollToBottom moves it.
func (w *chatWindow) refresh() {
	var content strings.Builder
	width := w.bubbleWidth()

	for i, b := range w.bubbles {
		if i > 0 {
			content.WriteString("\n")
		}

		if b.Role() == models.RoleUser {
			content.WriteString(userLabelStyle.Render("● You"))
			content.WriteString("\n")
			content.WriteString(userBubbleStyle.Width(width).Render(b.Text()))
		} else {
			content.WriteString(botLabelStyle.Render("✦ Analyst"))
			content.WriteString("\n")
			content.WriteString(botBubbleStyle.Width(width).Render(w.botText(b)))
		}
		content.WriteString("\n")
	}

	w.viewport.SetContent(content.String())
}

func (w *chatWindow) botText(b *models.Bubble) string {
	if b.Pending() {
		return pendingStyle.Render(b.Text())
	}
	if strings.HasPrefix(b.Text(), "Error:") {
		return errorTextStyle.Render(b.Text())
	}
	if out, ok := w.rendered[b]; ok {
		return out
	}
	out := render.BubbleText(b.Text(), w.opts)
	w.rendered[b] = out
	return out
}

// symbolField is the symbol input. It implements chat.Input.
type symbolField struct {
	input textinput.Model
}

func newSymbolField() *symbolField {
	ti := textinput.New()
	ti.Placeholder = "Coin pair, e.g. BTCUSDT"
	ti.CharLimit = 32
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	ti.Focus()
	return &symbolField{input: ti}
}

func (f *symbolField) Value() string {
	return f.input.Value()
}

func (f *symbolField) SetValue(value string) {
	f.input.SetValue(value)
}

// alertBanner is a blocking notice. It implements chat.Alerter.
// While active, key presses only dismiss it.
type alertBanner struct {
	message string
}

func (a *alertBanner) Alert(message string) {
	a.message = message
}

func (a *alertBanner) active() bool {
	return a.message != ""
}

func (a *alertBanner) dismiss() {
	a.message = ""
}
