// Package render turns a workbook into Markdown or HTML text.
package render

import (
	"html"
	"strings"
)

// superscriptRunes maps Unicode superscript code points to their ASCII form.
var superscriptRunes = map[rune]byte{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
	'ⁿ': 'n', '⁺': '+', '⁻': '-', '⁼': '=', '⁽': '(', '⁾': ')',
}

// subscriptRunes maps Unicode subscript code points to their ASCII form.
var subscriptRunes = map[rune]byte{
	'₀': '0', '₁': '1', '₂': '2', '₃': '3', '₄': '4',
	'₅': '5', '₆': '6', '₇': '7', '₈': '8', '₉': '9',
	'₊': '+', '₋': '-', '₌': '=', '₍': '(', '₎': ')',
}

// stripIllegalChars replaces control characters in the ranges 0x00-0x08,
// 0x0B-0x0C and 0x0E-0x1F with a single space each.
func stripIllegalChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r <= 0x08) || (r >= 0x0B && r <= 0x0C) || (r >= 0x0E && r <= 0x1F) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// convertScripts rewrites Unicode superscript/subscript code points into
// bracketed ASCII runs and escapes the remaining text. Consecutive script
// characters collapse into one bracket pair, so "x¹²" becomes one
// superscript run "12".
func convertScripts(text string, supOpen, supClose, subOpen, subClose string, escape func(string) string) string {
	var out strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if _, ok := superscriptRunes[runes[i]]; ok {
			var run strings.Builder
			for i < len(runes) {
				c, ok := superscriptRunes[runes[i]]
				if !ok {
					break
				}
				run.WriteByte(c)
				i++
			}
			out.WriteString(supOpen + run.String() + supClose)
			continue
		}
		if _, ok := subscriptRunes[runes[i]]; ok {
			var run strings.Builder
			for i < len(runes) {
				c, ok := subscriptRunes[runes[i]]
				if !ok {
					break
				}
				run.WriteByte(c)
				i++
			}
			out.WriteString(subOpen + run.String() + subClose)
			continue
		}
		out.WriteString(escape(string(runes[i])))
		i++
	}
	return out.String()
}

// scriptsToHTML renders Unicode script characters as <sup>/<sub> elements
// and HTML-escapes everything else.
func scriptsToHTML(text string) string {
	return convertScripts(text, "<sup>", "</sup>", "<sub>", "</sub>", html.EscapeString)
}

// scriptsToMarkdown renders Unicode script characters in ^x^ / ~x~ bracket
// notation and escapes Markdown table delimiters.
func scriptsToMarkdown(text string) string {
	return convertScripts(text, "^", "^", "~", "~", escapeMarkdown)
}

// escapeMarkdown neutralizes characters that would break a pipe table.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
