package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"biascope/domain/bias"
)

// RenderedAdvice is an advice block with its Markdown body converted to HTML
type RenderedAdvice struct {
	Kind     string
	Severity bias.Severity
	Title    string
	Body     template.HTML
}

// renderAdvice converts the corrective-action Markdown to HTML for the
// report template. Advice bodies are system-generated, never user input.
func renderAdvice(blocks []bias.Advice) []RenderedAdvice {
	out := make([]RenderedAdvice, 0, len(blocks))
	for _, a := range blocks {
		out = append(out, RenderedAdvice{
			Kind:     a.Kind,
			Severity: a.Severity,
			Title:    a.Title,
			Body:     markdownToHTML(a.Body),
		})
	}
	return out
}

func markdownToHTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}
