package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-tex2html/internal/texsrc"
)

func TestNormalizeDateRange(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "double dash", in: "May 2020 -- Oct 2021", want: "May 2020 – Oct 2021"},
		{name: "triple dash no spaces", in: "2019---2020", want: "2019 – 2020"},
		{name: "whitespace collapsed", in: "Jan  2020   --  Present", want: "Jan 2020 – Present"},
		{name: "single hyphen untouched", in: "2019-2020", want: "2019-2020"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDateRange(tt.in); got != tt.want {
				t.Errorf("normalizeDateRange(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderLinkArgument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "href with uline",
			in:   `\href{https://x.dev}{\uline{Link}}`,
			want: `<a href="https://x.dev"><strong>Link</strong></a>`,
		},
		{
			name: "plain text falls back to bold",
			in:   `Acme Corp`,
			want: `<strong>Acme Corp</strong>`,
		},
		{
			name: "escaped ampersand in display",
			in:   `\href{https://x.dev}{R\&D}`,
			want: `<a href="https://x.dev"><strong>R&amp;D</strong></a>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderLinkArgument(tt.in); got != tt.want {
				t.Errorf("renderLinkArgument(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyTrioHeadings(t *testing.T) {
	src := `\resumeTrioHeading{Converter}{Go, SQLite}{\href{https://x.dev}{\uline{Source}}}
\resumeTrioHeading{Second}{Rust}{no link}`
	pc := NewContext(src, texsrc.Metadata{})

	frag := "a " + Marker(MacroTrioHeading) + " b " + Marker(MacroTrioHeading)
	got := applyTrioHeadings(frag, pc)

	for _, w := range []string{
		`<span class="trio-title">Converter</span>`,
		`<span class="trio-tech">Go, SQLite</span>`,
		`<span class="trio-link"><a href="https://x.dev"><strong>Source</strong></a></span>`,
		`<span class="trio-title">Second</span>`,
		`<span class="trio-link"><strong>no link</strong></span>`,
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\noutput: %s", w, got)
		}
	}
	if pc.Trio.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", pc.Trio.Remaining())
	}
}

func TestApplyTrioHeadingsDesyncLeavesMarker(t *testing.T) {
	src := `\resumeTrioHeading{Only}{One}{Tuple}`
	pc := NewContext(src, texsrc.Metadata{})

	frag := Marker(MacroTrioHeading) + " mid " + Marker(MacroTrioHeading)
	got := applyTrioHeadings(frag, pc)

	if !strings.HasSuffix(got, " mid "+Marker(MacroTrioHeading)) {
		t.Errorf("extra marker should survive byte for byte: %s", got)
	}
	if !strings.Contains(got, `trio-title">Only<`) {
		t.Errorf("first marker should still be rebuilt: %s", got)
	}
}

func TestApplyQuadDetailsAndDateMergeFix(t *testing.T) {
	src := `\resumeQuadHeadingChild{\href{https://acme.dev}{\uline{Acme}}}{May 2020 --}{Present Senior Engineer}`
	pc := NewContext(src, texsrc.Metadata{})

	got := applyQuadDetails(Marker(MacroQuadHeadingChild), pc)
	if !strings.Contains(got, `<span class="entry-date">May 2020 –</span>`) {
		t.Fatalf("date range before merge fix wrong: %s", got)
	}

	got = applyDateMergeFix(got, nil)
	for _, w := range []string{
		`<span class="entry-date">May 2020 – Present</span>`,
		`<div class="entry-role"><em>Senior Engineer</em></div>`,
		`<a href="https://acme.dev"><strong>Acme</strong></a>`,
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\noutput: %s", w, got)
		}
	}
}

func TestApplyDateMergeFixMonthToken(t *testing.T) {
	frag := `<div class="entry"><div class="entry-row">` +
		`<span class="entry-title"><strong>X</strong></span>` +
		`<span class="entry-date">Jan 2019 –</span></div>` +
		`<div class="entry-role"><em>Dec 2019 Analyst</em></div></div>`

	got := applyDateMergeFix(frag, nil)
	if !strings.Contains(got, `<span class="entry-date">Jan 2019 – Dec 2019</span>`) {
		t.Errorf("month token not merged: %s", got)
	}
	if !strings.Contains(got, `<em>Analyst</em>`) {
		t.Errorf("role not trimmed: %s", got)
	}
}

func TestApplySkillsTable(t *testing.T) {
	src := `\resumeSectionType{Languages \& Tools}{:}{Go, SQL}
\resumeSectionType{Frameworks}{:}{net/http}`
	pc := NewContext(src, texsrc.Metadata{})

	frag := `<h2>Technical Skills</h2><p>leaked ` + Marker(MacroSectionType) + `</p><h2>Projects</h2>`
	got := applySkillsTable(frag, pc)

	for _, w := range []string{
		`<div class="skills-table">`,
		`<span class="skill-label">Languages &amp; Tools</span>`,
		`<span class="skill-sep">:</span>`,
		`<span class="skill-content">Go, SQL</span>`,
		`<span class="skill-label">Frameworks</span>`,
		`<h2>Projects</h2>`,
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\noutput: %s", w, got)
		}
	}
	if strings.Contains(got, "leaked") {
		t.Errorf("old section body survived: %s", got)
	}
}

func TestApplySkillsTableNoTuplesIsNoop(t *testing.T) {
	pc := NewContext("", texsrc.Metadata{})
	frag := `<h2>Technical Skills</h2><p>body</p>`
	if got := applySkillsTable(frag, pc); got != frag {
		t.Errorf("fragment changed without tuples: %q", got)
	}
}
