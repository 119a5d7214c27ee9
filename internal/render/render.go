package render

import "strings"

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth renders with the default options at the given width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// BubbleText renders a chat bubble's text, falling back to the plain text
// if rendering fails. Leading and trailing blank lines added by glamour are
// removed.
func BubbleText(text string, opts Options) string {
	rendered, err := Markdown(text, opts)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}
