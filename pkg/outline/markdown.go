package outline

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// RenderHTML converts outline Markdown to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render outline html: %w", err)
	}
	return buf.String(), nil
}
