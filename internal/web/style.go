package web

import (
	"strings"
)

// SetStyleField returns style with the CSS declaration for field replaced
// by value, or appended when absent. Other declarations are untouched.
func SetStyleField(style, field, value string) string {
	prefix := field + ":"
	decl := prefix + " " + value

	if start := strings.Index(style, prefix); start >= 0 {
		rest := style[start:]
		end := len(rest)
		if i := strings.IndexByte(rest, ';'); i >= 0 {
			end = i + 1
			return style[:start] + decl + ";" + rest[end:]
		}
		return style[:start] + decl
	}
	if style == "" {
		return decl
	}
	return strings.TrimRight(style, ";") + "; " + decl
}

// RemoveStyleField returns style without the declaration for field.
func RemoveStyleField(style, field string) string {
	prefix := field + ":"
	start := strings.Index(style, prefix)
	if start < 0 {
		return style
	}
	rest := style[start:]
	end := len(rest)
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		end = i + 1
	}
	out := style[:start] + strings.TrimLeft(rest[end:], " ")
	return strings.TrimRight(out, " ")
}

// UpdateStyle rewrites one CSS field of el's style attribute.
func UpdateStyle(el Element, field, value string) error {
	current, _ := el.GetAttribute("style")
	return el.SetAttribute("style", SetStyleField(current, field, value))
}

// ClearStyle removes one CSS field from el's style attribute.
func ClearStyle(el Element, field string) error {
	current, ok := el.GetAttribute("style")
	if !ok {
		return nil
	}
	return el.SetAttribute("style", RemoveStyleField(current, field))
}
