package tex2html

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleResume = `\documentclass{article}
\title{Jane Doe Resume}
\author{Jane Doe}
\begin{document}
\begin{center}
  \textbf{\Huge \scshape Jane Doe} \\
  \faPhone~+1 555 123 4567 $|$ \faEnvelope~jane@doe.dev & \faGithub~github.com/jane
\end{center}

\section{Experience}
\resumeQuadHeadingChild{\href{https://acme.dev}{\uline{Acme}}}{May 2020 --}{Present Engineer}
\resumeItemListStart
\resumeItem Improved throughput by 40\% across services
\resumeItemListEnd

\section{Technical Skills}
\resumeSectionType{Languages \& Tools}{:}{Go, SQL}

\section{Projects}
\resumeTrioHeading{Converter}{Go}{\href{https://x.dev}{\uline{Source}}}
\end{document}`

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }
	c, err := NewConverter(WithNow(now))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return c
}

func TestConvert(t *testing.T) {
	c := newTestConverter(t)

	res, err := c.Convert(context.Background(), Input{Source: sampleResume})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if res.Metadata.Title != "Jane Doe Resume" || res.Metadata.Author != "Jane Doe" {
		t.Errorf("Metadata = %+v", res.Metadata)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}

	for _, want := range []string{
		"<title>Jane Doe Resume</title>",
		`<div class="contact-name">Jane Doe</div>`,
		`<span class="contact-phone">`,
		`<i class="fa fa-envelope" aria-hidden="true"></i>`,
		"<h2>Experience</h2>",
		`<span class="entry-date">May 2020 – Present</span>`,
		"<em>Engineer</em>",
		"<li>Improved throughput by 40% across services</li>",
		`<span class="skill-label">Languages &amp; Tools</span>`,
		`<a href="https://x.dev" target="_blank" rel="noopener noreferrer"><strong>Source</strong></a>`,
		"Converted with go-tex2html",
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("document missing %q", want)
		}
	}

	for _, not := range []string{`\uline`, `\href`, `\resumeItem`, "macro-", "textsize-huge"} {
		if strings.Contains(res.HTML, not) {
			t.Errorf("document should not contain %q", not)
		}
	}

	if !strings.HasPrefix(res.Fragment, "<") {
		t.Errorf("Fragment looks wrong: %q", res.Fragment[:min(len(res.Fragment), 60)])
	}
}

func TestConvertEmptySource(t *testing.T) {
	c := newTestConverter(t)
	if _, err := c.Convert(context.Background(), Input{Source: "  \n"}); !errors.Is(err, ErrEmptySource) {
		t.Errorf("got %v, want ErrEmptySource", err)
	}
}

func TestConvertCancelledContext(t *testing.T) {
	c := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Convert(ctx, Input{Source: sampleResume}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestConvertRenderError(t *testing.T) {
	c := newTestConverter(t)
	// \begin{document} without \end{document} is unbalanced.
	if _, err := c.Convert(context.Background(), Input{Source: `\begin{document} x`}); !errors.Is(err, ErrRender) {
		t.Errorf("got %v, want ErrRender", err)
	}
}

func TestConvertReportsDesyncWarnings(t *testing.T) {
	c := newTestConverter(t)

	// A marker with no extractable argument tuple degrades with a warning.
	src := `\begin{document}
\section{Projects}
\resumeTrioHeading
\end{document}`

	res, err := c.Convert(context.Background(), Input{Source: src})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a desync warning")
	}
	if !strings.Contains(res.Warnings[0], "resumeTrioHeading") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if !strings.Contains(res.Fragment, "macro-resumeTrioHeading") {
		t.Error("unmatched marker should survive in the fragment")
	}
}
