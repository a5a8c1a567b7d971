package ui

import (
	"html/template"
	"os"

	"limaprices/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const defaultAbout = "This application allows you to look at individualized apartment prices " +
	"in the city of Lima. You are able to filter by districts, and set a specific timeframe."

// loadAbout renders the description paragraph from a Markdown file, or the
// built-in text when path is empty. Raw HTML in the file is dropped.
func loadAbout(path string) (template.HTML, error) {
	source := []byte(defaultAbout)
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(errors.ConfigInvalid(err.Error()), "reading ABOUT_FILE %s", path)
		}
		source = content
	}
	return renderMarkdown(source), nil
}

func renderMarkdown(source []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return template.HTML(markdown.ToHTML(source, p, renderer))
}
