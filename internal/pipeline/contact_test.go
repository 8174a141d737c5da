package pipeline

import (
	"strings"
	"testing"
)

func TestApplyMathPipeSeparator(t *testing.T) {
	frag := `a <span class="math inline">|</span> b`
	want := `a <span class="contact-sep">|</span> b`
	if got := applyMathPipeSeparator(frag, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyContactHeaderTwoColumns(t *testing.T) {
	frag := `<div class="center">` +
		`<strong><span class="textsize-huge">Jane Doe</span></strong><br/>` +
		Marker("faPhone") + `&nbsp;+1 555 123 4567 ` +
		`<span class="contact-sep">|</span> jane@doe.dev ` +
		`&amp; ` + Marker("faGithub") + ` github.com/jane` +
		`</div><h2>Experience</h2>`

	got := applyContactHeader(frag, nil)

	for _, w := range []string{
		`<div class="contact-name">Jane Doe</div>`,
		`contact-cols-2`,
		`<span class="contact-phone"><i class="fa fa-phone" aria-hidden="true"></i>&nbsp;+1 555 123 4567</span>`,
		`jane@doe.dev`,
		`<i class="fa fa-github" aria-hidden="true"></i>`,
		`<h2>Experience</h2>`,
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\noutput: %s", w, got)
		}
	}
	for _, n := range []string{`<div class="center">`, "textsize-huge", "&amp;", "<br/>"} {
		if strings.Contains(got, n) {
			t.Errorf("output should not contain %q\noutput: %s", n, got)
		}
	}
}

func TestApplyContactHeaderStripsColumnSpec(t *testing.T) {
	frag := `<div class="tabular">l@` + Marker("extracolsep") + `r` +
		`<strong><span class="textsize-huge">A B</span></strong> x@y.dev</div>`

	got := applyContactHeader(frag, nil)

	if strings.Contains(got, "extracolsep") {
		t.Errorf("column-spec marker survived: %s", got)
	}
	if !strings.Contains(got, "x@y.dev") {
		t.Errorf("email address damaged: %s", got)
	}
	if !strings.Contains(got, "contact-cols-1") {
		t.Errorf("single detail line should yield one column: %s", got)
	}
}

func TestApplyContactHeaderWithoutName(t *testing.T) {
	frag := `<div class="center">just a centered line</div>`
	if got := applyContactHeader(frag, nil); got != frag {
		t.Errorf("block without a huge name changed: %q", got)
	}
}

func TestApplyContactHeaderIgnoresBlocksAfterFirstSection(t *testing.T) {
	frag := `<h2>Experience</h2><div class="center"><span class="textsize-huge">X</span></div>`
	if got := applyContactHeader(frag, nil); got != frag {
		t.Errorf("block after the first section changed: %q", got)
	}
}
