package ui

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderInsightsHTML converts narrative insight markdown from the
// suggestion backend into HTML for the dashboard. Empty input yields
// an empty string.
func RenderInsightsHTML(md string) string {
	if md == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML,
	})
	return string(markdown.Render(doc, renderer))
}
