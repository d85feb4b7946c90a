// Package bootstrap opens the configured content tree and builds the menu engine from it.
package bootstrap

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/Xnn511/kiwa/content"
	"github.com/Xnn511/kiwa/internal/catalog"
	"github.com/Xnn511/kiwa/internal/i18n"
	"github.com/Xnn511/kiwa/internal/menu"
	"github.com/Xnn511/kiwa/internal/platform/config"
)

// Content is everything loaded from the content tree.
type Content struct {
	Store     *catalog.Store
	Bundle    *i18n.Bundle
	Engine    *menu.Engine
	Templates fs.FS
	Static    fs.FS
}

// Open loads catalog, locales, templates and static assets. An empty
// cfg.Content.Dir uses the embedded content; a directory without templates/
// or static/ falls back to the embedded ones for that part.
func Open(cfg config.Config) (*Content, error) {
	embedded := content.FS()
	fsys := embedded
	if cfg.Content.Dir != "" {
		info, err := os.Stat(cfg.Content.Dir)
		if err != nil {
			return nil, fmt.Errorf("open content dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("open content dir: %s is not a directory", cfg.Content.Dir)
		}
		fsys = os.DirFS(cfg.Content.Dir)
	}

	store, err := catalog.Load(fsys, cfg.Content.ItemsFile, cfg.Content.TagsFile)
	if err != nil {
		return nil, err
	}
	bundle, err := i18n.Load(fsys, cfg.Content.LocalesDir, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, err
	}
	templates, err := subOrEmbedded(fsys, embedded, "templates")
	if err != nil {
		return nil, err
	}
	static, err := subOrEmbedded(fsys, embedded, "static")
	if err != nil {
		return nil, err
	}

	return &Content{
		Store:     store,
		Bundle:    bundle,
		Engine:    menu.NewEngine(store, bundle, menu.WithEngineCollation(cfg.Menu.Collation)),
		Templates: templates,
		Static:    static,
	}, nil
}

func subOrEmbedded(fsys, embedded fs.FS, dir string) (fs.FS, error) {
	if info, err := fs.Stat(fsys, dir); err == nil && info.IsDir() {
		return fs.Sub(fsys, dir)
	}
	return fs.Sub(embedded, dir)
}

// Report lists content problems that do not prevent serving.
type Report struct {
	// UnknownTags maps item names to tag references that resolve to no tag.
	UnknownTags map[string][]string
	// Missing maps a language to message keys it does not translate.
	Missing map[string][]string
}

// OK reports whether the content is complete.
func (r Report) OK() bool {
	return len(r.UnknownTags) == 0 && len(r.Missing) == 0
}

// Check looks for dangling tag references and untranslated catalog keys.
func (c *Content) Check() Report {
	report := Report{UnknownTags: c.Store.UnknownTagRefs(), Missing: map[string][]string{}}

	keys := catalogKeys(c.Store)
	for _, lang := range c.Bundle.Supported() {
		if missing := c.Bundle.Missing(lang, keys); len(missing) > 0 {
			report.Missing[lang] = missing
		}
	}
	return report
}

func catalogKeys(store *catalog.Store) []string {
	seen := map[string]struct{}{}
	add := func(key string) {
		if key != "" {
			seen[key] = struct{}{}
		}
	}
	for _, item := range store.Items() {
		add(item.Name)
		add(item.Description)
		add(item.Category)
	}
	idx := store.Index()
	for _, tag := range idx.Tags {
		add(tag.Name)
		add(tag.Category)
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
