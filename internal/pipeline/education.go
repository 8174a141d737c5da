package pipeline

import (
	"regexp"
	"strings"
)

type educationEntry struct {
	institution string
	location    string
	degree      string
	dates       string
	heuristic   bool
}

func (e educationEntry) html() string {
	class := "entry education-entry"
	if e.heuristic {
		class += " heuristic"
	}
	return `<div class="` + class + `">` +
		`<div class="entry-row">` +
		`<span class="entry-title">` + e.institution + `</span>` +
		`<span class="entry-date">` + e.location + `</span>` +
		`</div>` +
		`<div class="entry-row">` +
		`<span class="entry-degree"><em>` + e.degree + `</em></span>` +
		`<span class="entry-date">` + e.dates + `</span>` +
		`</div>` +
		`</div>`
}

var (
	degreePattern = regexp.MustCompile(
		`(?:B|M)\.?\s?(?:Sc|Tech|Eng|A|BA)\.?(?:\s(?:in\s)?[A-Z][^<,\x{2013}]*)?|Bachelor[^<,\x{2013}]*|Master[^<,\x{2013}]*|Ph\.?\s?D\.?[^<,\x{2013}]*`)
	monthRangePattern = regexp.MustCompile(
		`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s\d{4}\s*(?:\x{2013}|--+|-)\s*(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s\d{4}|Present)`)
	tagPattern = regexp.MustCompile(`<[^>]+>`)
)

// applyEducationQuads rebuilds education entries. Each marker first takes
// the next extracted four-argument tuple; when the source carried the
// entry as plain text instead, the text segment after the marker is
// parsed heuristically: a date range, a degree phrase, and an
// "institution, city, country" prefix before the degree.
func applyEducationQuads(frag string, pc *Context) string {
	marker := Marker(MacroQuadHeading)
	var b strings.Builder
	pos := 0
	for {
		rel := strings.Index(frag[pos:], marker)
		if rel < 0 {
			b.WriteString(frag[pos:])
			break
		}
		i := pos + rel
		b.WriteString(frag[pos:i])
		pos = i + len(marker)

		if inv, ok := pc.Quad.Next(); ok {
			b.WriteString(educationEntry{
				institution: renderLinkArgument(inv.Args[0]),
				location:    renderTextArg(inv.Args[1]),
				degree:      renderTextArg(inv.Args[2]),
				dates:       renderTextArg(normalizeDateRange(inv.Args[3])),
			}.html())
			continue
		}

		entry, consumed, ok := parseEducationSegment(frag[pos:])
		if !ok {
			b.WriteString(marker)
			continue
		}
		b.WriteString(entry.html())
		pos += consumed
	}
	return b.String()
}

// parseEducationSegment inspects the text segment following a bare
// education marker, up to the next closing paragraph or heading.
func parseEducationSegment(rest string) (educationEntry, int, bool) {
	end := len(rest)
	for _, stop := range []string{"</p>", "<h2", `<span class="macro`} {
		if i := strings.Index(rest, stop); i >= 0 && i < end {
			end = i
		}
	}
	segment := rest[:end]

	dates := monthRangePattern.FindString(segment)
	degLoc := degreePattern.FindStringIndex(segment)
	if dates == "" || degLoc == nil {
		return educationEntry{}, 0, false
	}

	pre := tagPattern.ReplaceAllString(segment[:degLoc[0]], " ")
	pre = strings.Trim(whitespaceRun.ReplaceAllString(pre, " "), " ,–-")
	parts := strings.SplitN(pre, ",", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" {
		return educationEntry{}, 0, false
	}

	degree := strings.Trim(tagPattern.ReplaceAllString(segment[degLoc[0]:degLoc[1]], " "), " ,–-")
	return educationEntry{
		institution: strings.TrimSpace(parts[0]),
		location:    strings.TrimSpace(parts[1]),
		degree:      strings.TrimSpace(degree),
		dates:       normalizeDateRange(dates),
		heuristic:   true,
	}, end, true
}
