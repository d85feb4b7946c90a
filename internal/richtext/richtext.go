// Package richtext renders localized Markdown descriptions to sanitized HTML.
package richtext

import (
	"bytes"
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts Markdown to HTML and strips anything outside a small inline policy.
// It is safe for concurrent use; rendered output is memoized per source text.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]template.HTML
}

// New returns a Renderer with strikethrough and autolinks enabled.
func New() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify)),
		policy: newDescriptionPolicy(),
		strict: bluemonday.StrictPolicy(),
		cache:  map[string]template.HTML{},
	}
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "em", "strong", "del", "code", "ul", "ol", "li")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Render returns sanitized HTML for src. Plain text without Markdown comes back as a single paragraph.
func (r *Renderer) Render(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	r.mu.RLock()
	out, ok := r.cache[src]
	r.mu.RUnlock()
	if ok {
		return out
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		out = template.HTML(template.HTMLEscapeString(src))
	} else {
		out = template.HTML(strings.TrimSpace(r.policy.Sanitize(buf.String())))
	}

	r.mu.Lock()
	r.cache[src] = out
	r.mu.Unlock()
	return out
}

// Plain strips all markup, for meta descriptions and JSON-LD.
func (r *Renderer) Plain(src string) string {
	text := r.strict.Sanitize(string(r.Render(src)))
	return strings.TrimSpace(html.UnescapeString(text))
}
