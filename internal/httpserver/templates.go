package httpserver

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const (
	layoutFile = "layout.tmpl"
	baseName   = "base"
)

// pages maps a page name ("menu") to its template set: the layout plus the page file.
type pages map[string]*template.Template

// parseTemplates clones the layout once per page file so every page can define "content".
func parseTemplates(fsys fs.FS) (pages, error) {
	layout, err := template.New(layoutFile).ParseFS(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := pages{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == layoutFile || path.Ext(name) != ".tmpl" {
			continue
		}
		set, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(fsys, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[strings.TrimSuffix(name, ".tmpl")] = set
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	return out, nil
}

// render executes block of page into a buffer first so template errors still yield a clean 500.
func (p pages) render(w http.ResponseWriter, status int, page, block string, data any) error {
	set, ok := p[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, block, data); err != nil {
		return fmt.Errorf("execute %s/%s: %w", page, block, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
