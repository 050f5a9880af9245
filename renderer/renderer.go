// Package renderer renders valuations as markdown.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed *.md
var templates embed.FS

// RenderValuation renders the Valuation struct to a markdown string.
func RenderValuation(v *Valuation) string {
	partials := map[string]string{
		"valuation_title":      "valuation_title.md",
		"valuation_summary":    "valuation_summary.md",
		"valuation_projection": "valuation_projection.md",
		"valuation_parameters": "valuation_parameters.md",
	}
	return renderTemplate("valuation", "valuation.md", partials, v)
}

// RenderFundamentals renders the Fundamentals struct to a markdown string.
func RenderFundamentals(f *Fundamentals) string {
	return renderTemplate("fundamentals", "fundamentals.md", nil, f)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// HTML converts a markdown report to an HTML fragment.
func HTML(md string) (string, error) {
	// tables are a GFM extension.
	gm := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := gm.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
