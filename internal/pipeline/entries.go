package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/alnah/go-tex2html/internal/texsrc"
)

// renderTextArg turns a raw macro argument into HTML text: LaTeX escape
// sequences become their literal characters, then the result is entity
// escaped.
func renderTextArg(arg string) string {
	r := strings.NewReplacer(
		`\&`, "&",
		`\%`, "%",
		`\_`, "_",
		`\#`, "#",
		`\$`, "$",
		"~", " ",
	)
	return html.EscapeString(r.Replace(arg))
}

// renderLinkArgument renders a macro argument that usually carries an
// \href. The display text is unwrapped from \uline/\underline and bolded;
// an argument without \href falls back to bold text.
func renderLinkArgument(arg string) string {
	invs := texsrc.ExtractInvocations(arg, "href", 2)
	if len(invs) == 0 {
		return "<strong>" + renderTextArg(stripUnderline(arg)) + "</strong>"
	}
	inv := invs[0]
	url := html.EscapeString(strings.TrimSpace(inv.Args[0]))
	display := renderTextArg(stripUnderline(inv.Args[1]))
	return `<a href="` + url + `"><strong>` + display + `</strong></a>`
}

func stripUnderline(s string) string {
	for _, name := range []string{"uline", "underline"} {
		for _, inv := range texsrc.ExtractInvocations(s, name, 1) {
			s = strings.Replace(s, inv.Full, inv.Args[0], 1)
		}
	}
	return strings.TrimSpace(s)
}

var dashRunPattern = regexp.MustCompile(`\s*-{2,}\s*`)

// normalizeDateRange rewrites LaTeX dash runs as a spaced en dash and
// collapses internal whitespace.
func normalizeDateRange(s string) string {
	s = dashRunPattern.ReplaceAllString(s, " – ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// applyTrioHeadings rebuilds project headings: title, technology list and
// an external link.
func applyTrioHeadings(frag string, pc *Context) string {
	return replaceEachMarker(frag, MacroTrioHeading, func() (string, bool) {
		inv, ok := pc.Trio.Next()
		if !ok {
			return "", false
		}
		return `<div class="trio-heading">` +
			`<span class="trio-title">` + renderTextArg(inv.Args[0]) + `</span>` +
			`<span class="trio-tech">` + renderTextArg(inv.Args[1]) + `</span>` +
			`<span class="trio-link">` + renderLinkArgument(inv.Args[2]) + `</span>` +
			`</div>`, true
	})
}

// applyQuadDetails rebuilds experience sub-entries: a title row with the
// date range, then the role in italics.
func applyQuadDetails(frag string, pc *Context) string {
	return replaceEachMarker(frag, MacroQuadHeadingChild, func() (string, bool) {
		inv, ok := pc.QuadChild.Next()
		if !ok {
			return "", false
		}
		return `<div class="entry">` +
			`<div class="entry-row">` +
			`<span class="entry-title">` + renderLinkArgument(inv.Args[0]) + `</span>` +
			`<span class="entry-date">` + renderTextArg(normalizeDateRange(inv.Args[1])) + `</span>` +
			`</div>` +
			`<div class="entry-role"><em>` + renderTextArg(inv.Args[2]) + `</em></div>` +
			`</div>`, true
	})
}

// A date range split across macro arguments leaves the range end at the
// start of the role span. The pattern matches a date span ending in a
// dangling en dash and pulls the leading month or "Present" token back.
var dateMergePattern = regexp.MustCompile(
	`(<span class="entry-date">[^<]*\x{2013})\s*` +
		`(</span></div><div class="entry-role"><em>)\s*` +
		`((?:Present|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?(?:\s?\d{4})?)\s*`)

func applyDateMergeFix(frag string, _ *Context) string {
	return dateMergePattern.ReplaceAllString(frag, "$1 $3$2")
}

// applySkillsTable replaces everything between the Technical Skills
// heading and the next section with rows built from the extracted
// resumeSectionType tuples: label, separator, content.
func applySkillsTable(frag string, pc *Context) string {
	const heading = "<h2>Technical Skills</h2>"
	start := strings.Index(frag, heading)
	if start < 0 {
		return frag
	}
	bodyStart := start + len(heading)
	end := len(frag)
	if next := strings.Index(frag[bodyStart:], "<h2"); next >= 0 {
		end = bodyStart + next
	}

	var rows strings.Builder
	for {
		inv, ok := pc.Skills.Next()
		if !ok {
			break
		}
		rows.WriteString(`<div class="skill-row">` +
			`<span class="skill-label">` + renderTextArg(inv.Args[0]) + `</span>` +
			`<span class="skill-sep">` + renderTextArg(inv.Args[1]) + `</span>` +
			`<span class="skill-content">` + renderTextArg(inv.Args[2]) + `</span>` +
			`</div>`)
	}
	if rows.Len() == 0 {
		return frag
	}

	return frag[:bodyStart] + "\n" + `<div class="skills-table">` + rows.String() + `</div>` + "\n" + frag[end:]
}
