// Package jsoncolor renders mention details as indented, theme-colored JSON
// for the raw details view.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/hark/internal/core/styles"
)

// Value marshals v and colorizes the result. Values that cannot be marshaled
// render as their error text in the error style.
func Value(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return styles.TextErrorStyle.Render(err.Error())
	}
	return Colorize(data)
}

// Colorize pretty-prints JSON bytes with theme-aware syntax coloring.
// Invalid JSON is returned unchanged.
func Colorize(data []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	raw := buf.String()
	var out strings.Builder
	for i := 0; i < len(raw); {
		n, style := token(raw, i)
		if n == 0 {
			out.WriteByte(raw[i])
			i++
			continue
		}
		out.WriteString(style.Render(raw[i : i+n]))
		i += n
	}
	return out.String()
}

// token reports the length and style of the token starting at pos, or zero
// when raw[pos] is whitespace that is copied through.
func token(raw string, pos int) (int, lipgloss.Style) {
	ch := raw[pos]
	switch {
	case ch == '"':
		end := stringEnd(raw, pos)
		rest := strings.TrimLeft(raw[end+1:], " \t")
		if strings.HasPrefix(rest, ":") {
			return end - pos + 1, styles.TextPrimaryStyle
		}
		return end - pos + 1, styles.TextSuccessStyle
	case ch == ':' || ch == ',':
		return 1, styles.TextMutedStyle
	case ch == '-' || (ch >= '0' && ch <= '9'):
		end := pos + 1
		for end < len(raw) && strings.IndexByte("0123456789.eE+-", raw[end]) >= 0 {
			end++
		}
		return end - pos, styles.TextWarningStyle
	case strings.HasPrefix(raw[pos:], "true"):
		return 4, styles.TextSecondaryStyle
	case strings.HasPrefix(raw[pos:], "false"):
		return 5, styles.TextSecondaryStyle
	case strings.HasPrefix(raw[pos:], "null"):
		return 4, styles.TextMutedStyle
	case strings.IndexByte("{}[]", ch) >= 0:
		return 1, styles.TextStyle
	}
	return 0, lipgloss.Style{}
}

// stringEnd returns the index of the closing quote for a JSON string starting at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}
