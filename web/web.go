package web

import "embed"

// Static holds the embedded web/static directory.
// Handlers access it via fs.Sub(Static, "static").
//
//go:embed static
var Static embed.FS

// Templates holds the embedded web/templates directory: the base layout
// plus one file per page under templates/pages.
//
//go:embed templates
var Templates embed.FS
