// Package ui implements the screen machinery behind the admin
// interface: HTML escaping, toasts, modals, forms, pagination, debounced
// search, and the generic list screen controller all entity screens
// share.
package ui

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters. It escapes
// blindly rather than entity-aware, so applying it twice double-escapes;
// callers must escape exactly once at render time.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
