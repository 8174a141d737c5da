package main

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-tex2html/internal/drive"
	"github.com/alnah/go-tex2html/internal/shell"
	"github.com/alnah/go-tex2html/internal/texsrc"
)

// indexMarkdown renders the readme body for the index page.
var indexMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(highlighting.WithStyle("github")),
	),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
)

// buildIndexHTML renders the readme plus the converted-document list and
// an optional source download button into a full shell-wrapped page.
// A missing readme is not fatal; the page then carries only the list.
func buildIndexHTML(wrapper *shell.Wrapper, readmePath, driveLink string, entries []ManifestEntry) (string, error) {
	var body strings.Builder

	if readmePath != "" {
		md, err := os.ReadFile(readmePath) // #nosec G304 -- user-provided path
		switch {
		case err == nil:
			var buf bytes.Buffer
			if err := indexMarkdown.Convert(md, &buf); err != nil {
				return "", fmt.Errorf("rendering readme: %w", err)
			}
			body.WriteString(buf.String())
		case !os.IsNotExist(err):
			return "", fmt.Errorf("%w: %v", ErrReadSource, err)
		}
	}

	body.WriteString(`<h2>Documents</h2>`)
	if len(entries) == 0 {
		body.WriteString(`<p>No documents converted yet.</p>`)
	} else {
		body.WriteString(`<ul class="item-list">`)
		for _, e := range entries {
			fmt.Fprintf(&body, `<li><a href="%s">%s</a> <span class="entry-date">%s</span></li>`,
				html.EscapeString(e.HTMLPath),
				html.EscapeString(e.Title),
				html.EscapeString(e.LastConvertedTimestamp))
		}
		body.WriteString(`</ul>`)
	}

	if driveLink != "" {
		dl, err := drive.DirectDownloadURL(driveLink)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&body,
			`<p><a class="download-button" href="%s" target="_blank" rel="noopener noreferrer">Download LaTeX source</a></p>`,
			html.EscapeString(dl))
	}

	return wrapper.Wrap(body.String(), texsrc.Metadata{Title: "Converted Documents"})
}
