package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Bundle holds flat key/message dictionaries per language.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	tags      []language.Tag
	matcher   language.Matcher
}

// Load reads <lang>.yaml (or <lang>.json) for every supported language from fsys.
// The fallback language is mandatory; other languages may be missing.
func Load(fsys fs.FS, dir string, fallback string, supported []string) (*Bundle, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		return nil, errors.New("i18n: fallback language is required")
	}
	if len(supported) == 0 {
		supported = []string{fallback}
	}

	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
	}
	langs := []string{fallback}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && l != fallback {
			langs = append(langs, l)
		}
	}

	for _, l := range langs {
		if _, dup := b.dict[l]; dup {
			continue
		}
		m, err := readDictionary(fsys, dir, l)
		if err != nil {
			// allow missing file for non-default locales
			if l != fallback && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		b.dict[l] = m
		b.supported = append(b.supported, l)
		b.tags = append(b.tags, tag)
	}
	// fallback first so the matcher defaults to it
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func readDictionary(fsys fs.FS, dir, lang string) (map[string]string, error) {
	var lastErr error
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		raw, err := fs.ReadFile(fsys, path.Join(dir, lang+ext))
		if err != nil {
			lastErr = err
			continue
		}
		m := map[string]string{}
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", lang, err)
		}
		return m, nil
	}
	return nil, lastErr
}

// Supported returns the loaded languages in sorted order.
func (b *Bundle) Supported() []string {
	out := append([]string(nil), b.supported...)
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether messages for lang were loaded.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.dict[strings.ToLower(lang)]
	return ok
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.Lookup(lang, key); ok {
		return v
	}
	return key
}

// Lookup is T without the key fallback; ok is false when no dictionary has the key.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	if lang != "" {
		if m, ok := b.dict[strings.ToLower(lang)]; ok {
			if v, ok := m[key]; ok {
				return v, true
			}
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Missing lists keys that have no message in lang's own dictionary, sorted.
func (b *Bundle) Missing(lang string, keys []string) []string {
	m := b.dict[strings.ToLower(lang)]
	var out []string
	seen := map[string]struct{}{}
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := m[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve chooses best language from Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(b.supported) {
		return b.fallback
	}
	return b.supported[idx]
}

// Normalize maps an explicit language choice (query or cookie) to a supported language.
// Region subtags are dropped; unknown languages yield ok=false.
func (b *Bundle) Normalize(lang string) (string, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "", false
	}
	if b.IsSupported(lang) {
		return lang, true
	}
	if tag, err := language.Parse(lang); err == nil {
		base, _ := tag.Base()
		if b.IsSupported(base.String()) {
			return base.String(), true
		}
	}
	return "", false
}

// Tag returns the language tag for lang, or the fallback tag when lang is unknown.
func (b *Bundle) Tag(lang string) language.Tag {
	if tag, err := language.Parse(lang); err == nil {
		return tag
	}
	return language.Make(b.fallback)
}
