// Package shell wraps a converted HTML fragment into a complete,
// styled, standalone document.
package shell

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-tex2html/internal/assets"
	"github.com/alnah/go-tex2html/internal/texsrc"
)

// Sentinel errors for document wrapping.
var (
	// ErrLoadAssets indicates the stylesheet or shell template could not be loaded.
	ErrLoadAssets = errors.New("failed to load assets")

	// ErrParseTemplate indicates the shell template is not valid html/template syntax.
	ErrParseTemplate = errors.New("failed to parse shell template")

	// ErrExecuteTemplate indicates template execution failed.
	ErrExecuteTemplate = errors.New("failed to execute shell template")

	// ErrEmptyFragment indicates there is no fragment to wrap.
	ErrEmptyFragment = errors.New("empty html fragment")
)

// Wrapper renders fragments into the shell document. Safe for concurrent
// use once constructed.
type Wrapper struct {
	tmpl  *template.Template
	style template.CSS
}

// Option configures a Wrapper.
type Option func(*options)

type options struct {
	loader       assets.Loader
	styleName    string
	templateName string
}

// WithLoader overrides the embedded asset loader.
func WithLoader(l assets.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithStyleName selects the stylesheet to inline (without .css extension).
func WithStyleName(name string) Option {
	return func(o *options) { o.styleName = name }
}

// WithTemplateName selects the shell template (without .html extension).
func WithTemplateName(name string) Option {
	return func(o *options) { o.templateName = name }
}

// New builds a Wrapper, loading and parsing its assets once.
func New(opts ...Option) (*Wrapper, error) {
	o := options{
		loader:       assets.NewEmbeddedLoader(),
		styleName:    assets.DefaultStyle,
		templateName: assets.DefaultTemplate,
	}
	for _, opt := range opts {
		opt(&o)
	}

	style, err := o.loader.LoadStyle(o.styleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadAssets, err)
	}
	raw, err := o.loader.LoadTemplate(o.templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadAssets, err)
	}

	tmpl, err := template.New(o.templateName).Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseTemplate, err)
	}

	return &Wrapper{tmpl: tmpl, style: template.CSS(style)}, nil
}

type pageData struct {
	Title  string
	Author string
	Date   string
	Style  template.CSS
	Body   template.HTML
}

// Wrap renders the fragment into a full HTML document carrying the
// metadata in <title> and meta tags. The fragment is trusted markup
// produced by the conversion pipeline.
func (w *Wrapper) Wrap(frag string, meta texsrc.Metadata) (string, error) {
	if strings.TrimSpace(frag) == "" {
		return "", ErrEmptyFragment
	}

	var b strings.Builder
	err := w.tmpl.Execute(&b, pageData{
		Title:  meta.Title,
		Author: meta.Author,
		Date:   meta.Date,
		Style:  w.style,
		Body:   template.HTML(frag), // #nosec G203 -- pipeline output, not user HTML
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExecuteTemplate, err)
	}
	return b.String(), nil
}
