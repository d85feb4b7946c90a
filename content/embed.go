// Package content embeds the default catalog, locales, templates and static assets.
package content

import (
	"embed"
	"io/fs"
)

//go:embed catalog/*.yaml locales/*.yaml templates/*.tmpl static
var files embed.FS

// FS returns the embedded content tree rooted at this directory.
func FS() fs.FS {
	return files
}

// StaticFS returns the embedded static assets rooted at static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(files, "static")
}

// TemplatesFS returns the embedded page templates rooted at templates/.
func TemplatesFS() (fs.FS, error) {
	return fs.Sub(files, "templates")
}
