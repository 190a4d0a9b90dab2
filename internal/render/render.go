// Package render turns question bodies written in Markdown into HTML that is
// safe to store and serve to browsers.
package render

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		// Raw HTML is passed through so the sanitizer decides what survives,
		// instead of goldmark silently dropping it.
		goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
	)
	return &Renderer{md: md, policy: newPolicy()}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	return p
}

// Render converts body to HTML and sanitizes the result. Malformed markup
// never fails; at worst the body comes back as escaped text.
func (r *Renderer) Render(body string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return r.Sanitize("<p>" + html.EscapeString(body) + "</p>\n")
	}
	return r.Sanitize(buf.String())
}

// Sanitize strips script-capable elements, event handlers and unsafe URLs
// from s. Applying it to its own output returns the same string.
func (r *Renderer) Sanitize(s string) string {
	return r.policy.Sanitize(s)
}
