// Package ui holds the HTML templates and static assets of the web server.
package ui

import "embed"

// Files contains templates/ and static/.
//
//go:embed templates static
var Files embed.FS
