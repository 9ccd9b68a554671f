package render

import (
	"fmt"
	"strings"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

// inlineStyle concatenates the detected cell style attributes into a single
// CSS declaration. An unstyled cell yields "" so no style attribute is
// emitted at all.
func inlineStyle(style models.CellStyle) string {
	if style.IsZero() {
		return ""
	}

	var parts []string
	if style.FillColor != "" {
		parts = append(parts, "background-color: "+style.FillColor)
	}
	if style.FontColor != "" {
		parts = append(parts, "color: "+style.FontColor)
	}
	if style.Bold {
		parts = append(parts, "font-weight: bold")
	}
	if style.Italic {
		parts = append(parts, "font-style: italic")
	}
	if style.Underline {
		parts = append(parts, "text-decoration: underline")
	}
	if style.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("font-size: %gpt", style.FontSize))
	}
	return strings.Join(parts, "; ")
}
