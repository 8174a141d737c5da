package tex2html

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-tex2html/internal/pipeline"
	"github.com/alnah/go-tex2html/internal/render"
	"github.com/alnah/go-tex2html/internal/shell"
	"github.com/alnah/go-tex2html/internal/texsrc"
)

// Compile-time interface implementation checks.
var _ FragmentRenderer = (*render.Renderer)(nil)

// Converter orchestrates the LaTeX-to-HTML conversion.
// Create with NewConverter and use Convert per document. Safe for
// concurrent use.
type Converter struct {
	renderer  FragmentRenderer
	wrapper   *shell.Wrapper
	shellOpts []shell.Option
	now       func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithRenderer replaces the generic fragment renderer.
func WithRenderer(r FragmentRenderer) Option {
	return func(c *Converter) { c.renderer = r }
}

// WithWrapper replaces the shell wrapper.
func WithWrapper(w *shell.Wrapper) Option {
	return func(c *Converter) { c.wrapper = w }
}

// WithShellOptions configures the default shell wrapper, for example to
// select a different stylesheet.
func WithShellOptions(opts ...shell.Option) Option {
	return func(c *Converter) { c.shellOpts = opts }
}

// WithNow fixes the clock used for the metadata date fallback.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the shell assets fail to load or parse.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		renderer: render.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.wrapper == nil {
		w, err := shell.New(c.shellOpts...)
		if err != nil {
			return nil, err
		}
		c.wrapper = w
	}
	return c, nil
}

// Convert runs the full conversion and returns the wrapped document.
// The context is checked between stages for cancellation.
// Recovers from internal panics to prevent crashes from propagating to
// callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Source) == "" {
		return nil, ErrEmptySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	meta := texsrc.ExtractMetadata(input.Source, c.now())

	frag, err := c.renderer.Render(input.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pc := pipeline.NewContext(input.Source, meta)
	frag = pipeline.Run(frag, pc)

	warnings := collectWarnings(frag, pc)

	doc, err := c.wrapper.Wrap(frag, meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrapDocument, err)
	}

	return &ConvertResult{
		HTML:     doc,
		Fragment: frag,
		Metadata: meta,
		Warnings: warnings,
	}, nil
}

// collectWarnings reports source/render desyncs in deterministic order:
// argument tuples no marker consumed, then markers no pass rebuilt.
func collectWarnings(frag string, pc *pipeline.Context) []string {
	var warnings []string

	unconsumed := pipeline.UnconsumedTuples(pc)
	names := make([]string, 0, len(unconsumed))
	for name := range unconsumed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		warnings = append(warnings,
			fmt.Sprintf("macro \\%s: %d argument tuple(s) not matched to output", name, unconsumed[name]))
	}

	for _, name := range pipeline.LeftoverMarkers(frag) {
		warnings = append(warnings,
			fmt.Sprintf("macro \\%s: marker left in output", name))
	}
	return warnings
}
