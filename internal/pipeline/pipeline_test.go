package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-tex2html/internal/texsrc"
)

func TestMarker(t *testing.T) {
	want := `<span class="macro macro-resumeItem"></span>`
	if got := Marker(MacroItem); got != want {
		t.Errorf("Marker() = %q, want %q", got, want)
	}
}

func TestPassesOrder(t *testing.T) {
	passes := Passes()
	index := make(map[string]int, len(passes))
	for i, p := range passes {
		if p.Apply == nil {
			t.Fatalf("pass %q has no Apply func", p.Name)
		}
		index[p.Name] = i
	}

	// Relative order the passes depend on.
	before := [][2]string{
		{"heading-promotion", "skills-table"},
		{"contact-header", "icons"},
		{"quad-details", "date-merge-fix"},
		{"item-lists", "paragraph-cleanup"},
		{"heading-list-wrapper", "paragraph-cleanup"},
		{"math-pipe-separator", "contact-header"},
	}
	for _, pair := range before {
		a, aok := index[pair[0]]
		b, bok := index[pair[1]]
		if !aok || !bok {
			t.Fatalf("pass missing: %v", pair)
		}
		if a >= b {
			t.Errorf("pass %q must run before %q", pair[0], pair[1])
		}
	}
}

func TestRunEndToEnd(t *testing.T) {
	src := `\resumeTrioHeading{Converter}{Go}{\href{https://x.dev}{\uline{Source}}}
\resumeQuadHeadingChild{Acme}{May 2020 --}{Present Engineer}
\resumeSectionType{Languages}{:}{Go, SQL}`
	pc := NewContext(src, texsrc.Metadata{Title: "Jane Doe", Author: "J. Doe", Date: "2025-01-01"})

	frag := "<p>" + Marker(MacroMaketitle) + "</p>" +
		"<h3>Experience</h3>" +
		"<p>" + Marker(MacroQuadHeadingChild) + "</p>" +
		"<p>" + Marker(MacroItemListStart) +
		Marker(MacroItem) + " Did a thing" +
		Marker(MacroItemListEnd) + "</p>" +
		"<h3>Technical Skills</h3>" +
		"<p>" + Marker(MacroSectionType) + "</p>" +
		"<h3>Projects</h3>" +
		"<p>" + Marker(MacroTrioHeading) + "</p>"

	got := Run(frag, pc)

	for _, w := range []string{
		`<h1 class="doc-title">Jane Doe</h1>`,
		"<h2>Experience</h2>",
		`<span class="entry-date">May 2020 – Present</span>`,
		`<em>Engineer</em>`,
		`<ul class="item-list"><li>Did a thing</li></ul>`,
		`<span class="skill-content">Go, SQL</span>`,
		`<span class="trio-title">Converter</span>`,
		`<a href="https://x.dev" target="_blank" rel="noopener noreferrer"><strong>Source</strong></a>`,
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\noutput: %s", w, got)
		}
	}

	if names := LeftoverMarkers(got); len(names) != 0 {
		t.Errorf("LeftoverMarkers() = %v, want none", names)
	}
	if counts := UnconsumedTuples(pc); len(counts) != 0 {
		t.Errorf("UnconsumedTuples() = %v, want none", counts)
	}
}

func TestRunReportsDesync(t *testing.T) {
	src := `\resumeTrioHeading{A}{B}{C}
\resumeTrioHeading{D}{E}{F}`
	pc := NewContext(src, texsrc.Metadata{Title: "T", Author: "A", Date: "D"})

	// One marker, two tuples: the second tuple stays unconsumed.
	got := Run("<p>"+Marker(MacroTrioHeading)+"</p>", pc)

	if counts := UnconsumedTuples(pc); counts[MacroTrioHeading] != 1 {
		t.Errorf("UnconsumedTuples() = %v, want one leftover trio tuple", counts)
	}
	if !strings.Contains(got, `trio-title">A<`) {
		t.Errorf("first tuple should still be applied: %s", got)
	}
}

func TestLeftoverMarkers(t *testing.T) {
	frag := Marker("resumeTrioHeading") + Marker("resumeTrioHeading") + Marker("faPhone")
	got := LeftoverMarkers(frag)
	want := []string{"resumeTrioHeading", "faPhone"}
	if len(got) != len(want) {
		t.Fatalf("LeftoverMarkers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LeftoverMarkers()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
