package pipeline

import (
	"regexp"
	"strings"
)

// applyMathPipeSeparator turns the inline-math vertical bar, a common
// LaTeX idiom for contact-line separators, into a styled separator span.
func applyMathPipeSeparator(frag string, _ *Context) string {
	return strings.ReplaceAll(frag,
		`<span class="math inline">|</span>`,
		`<span class="contact-sep">|</span>`)
}

var (
	hugeNamePattern = regexp.MustCompile(`<span class="textsize-huge">(.*?)</span>`)
	emptyStrong     = regexp.MustCompile(`<strong>\s*</strong>`)
	whitespaceRun   = regexp.MustCompile(`\s+`)

	// Column-spec residue leaks out of tabular* contact blocks next to
	// the extracolsep marker. The marker anchors the match so the @ of an
	// email address is never touched.
	extracolsepResidue = regexp.MustCompile(
		`[lcr|]{0,3}@?` + regexp.QuoteMeta(Marker("extracolsep")) + `[lcr|]{0,3}`)
	leadingColspec = regexp.MustCompile(`^\s*[lcr|]+\s`)

	phonePattern = regexp.MustCompile(
		`(<i class="fa fa-(?:phone|mobile)"[^>]*></i>)(?:&nbsp;|\s)*((?:\+|\()?\d[\d\s().\-]*\d)`)
)

// applyContactHeader restructures the centered block at the top of the
// document, the one holding the huge name, into a contact header with the
// name on its own line and the remaining details in one or two columns.
// Blocks without a huge-name span are left alone.
func applyContactHeader(frag string, _ *Context) string {
	limit := len(frag)
	if h := strings.Index(frag, "<h2"); h >= 0 {
		limit = h
	}

	start, contentStart := findContactBlock(frag[:limit])
	if start < 0 {
		return frag
	}
	end := findDivEnd(frag, contentStart)
	if end < 0 {
		return frag
	}
	contentEnd := end - len("</div>")

	inner := frag[contentStart:contentEnd]
	if !strings.Contains(inner, "textsize-huge") {
		return frag
	}

	// Icons are substituted here, before the global icon pass, so the
	// phone rewrap below can match. The global pass is a no-op on spans
	// already rewritten.
	inner = substituteIcons(inner)
	inner = stripAlignmentArtifacts(inner)

	name := ""
	if m := hugeNamePattern.FindStringSubmatchIndex(inner); m != nil {
		name = strings.TrimSpace(inner[m[2]:m[3]])
		inner = inner[:m[0]] + inner[m[1]:]
	}
	inner = emptyStrong.ReplaceAllString(inner, "")
	inner = strings.ReplaceAll(inner, "<br/>", " ")
	inner = strings.ReplaceAll(inner, Marker("vspace"), "")
	inner = strings.ReplaceAll(inner, `<span class="vspace"></span>`, "")
	inner = whitespaceRun.ReplaceAllString(inner, " ")

	var cols []string
	for _, part := range strings.SplitN(inner, "&amp;", 2) {
		part = strings.TrimSpace(phonePattern.ReplaceAllString(part,
			`<span class="contact-phone">$1&nbsp;$2</span>`))
		if part != "" {
			cols = append(cols, part)
		}
	}

	var b strings.Builder
	b.WriteString(`<div class="contact-header">`)
	b.WriteString(`<div class="contact-name">` + name + `</div>`)
	if len(cols) > 0 {
		if len(cols) == 2 {
			b.WriteString(`<div class="contact-columns contact-cols-2">`)
		} else {
			b.WriteString(`<div class="contact-columns contact-cols-1">`)
		}
		for _, c := range cols {
			b.WriteString(`<div class="contact-col">` + c + `</div>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)

	return frag[:start] + b.String() + frag[end:]
}

// findContactBlock locates the first center or tabular div in the region
// and returns the index of its opening tag and of its content.
func findContactBlock(region string) (start, contentStart int) {
	start = -1
	for _, open := range []string{`<div class="center">`, `<div class="tabular">`} {
		if i := strings.Index(region, open); i >= 0 && (start < 0 || i < start) {
			start = i
			contentStart = i + len(open)
		}
	}
	return start, contentStart
}

// findDivEnd walks div tags from contentStart at depth 1 and returns the
// index just past the matching </div>, or -1 when unbalanced.
func findDivEnd(frag string, contentStart int) int {
	depth := 1
	pos := contentStart
	for depth > 0 {
		nextOpen := strings.Index(frag[pos:], "<div")
		nextClose := strings.Index(frag[pos:], "</div>")
		if nextClose < 0 {
			return -1
		}
		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			pos += nextOpen + len("<div")
			continue
		}
		depth--
		pos += nextClose + len("</div>")
	}
	return pos
}

func stripAlignmentArtifacts(inner string) string {
	inner = extracolsepResidue.ReplaceAllString(inner, "")
	inner = leadingColspec.ReplaceAllString(inner, "")
	return inner
}
