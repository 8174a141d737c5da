package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// applyTitleBlock replaces the \maketitle marker with a header built from
// the extracted document metadata. The renderer wraps a lone marker in a
// paragraph, so the paragraph-wrapped form is tried first to avoid
// leaving an empty <p> behind.
func applyTitleBlock(frag string, pc *Context) string {
	block := fmt.Sprintf(
		`<header class="title-block"><h1 class="doc-title">%s</h1>`+
			`<p class="doc-byline">%s</p><p class="doc-date">%s</p></header>`,
		html.EscapeString(pc.Meta.Title),
		html.EscapeString(pc.Meta.Author),
		html.EscapeString(pc.Meta.Date),
	)

	marker := Marker(MacroMaketitle)
	if wrapped := "<p>" + marker + "</p>"; strings.Contains(frag, wrapped) {
		return strings.Replace(frag, wrapped, block, 1)
	}
	return strings.Replace(frag, marker, block, 1)
}

var headingTagPattern = regexp.MustCompile(`<(/?)h([34])>`)

// applyHeadingPromotion lifts every h3 to h2 and every h4 to h3. A single
// left-to-right scan rewrites each tag exactly once, so promotion cannot
// cascade regardless of tag order in the fragment.
func applyHeadingPromotion(frag string, _ *Context) string {
	return headingTagPattern.ReplaceAllStringFunc(frag, func(m string) string {
		sub := headingTagPattern.FindStringSubmatch(m)
		level := byte('2')
		if sub[2] == "4" {
			level = '3'
		}
		return "<" + sub[1] + "h" + string(level) + ">"
	})
}

// applyAbstractHeading inserts a heading before the first abstract block,
// which LaTeX renders with an implicit title the generic pass drops.
func applyAbstractHeading(frag string, _ *Context) string {
	const open = `<div class="abstract">`
	i := strings.Index(frag, open)
	if i < 0 {
		return frag
	}
	return frag[:i] + `<h2 class="abstract-title">Abstract</h2>` + frag[i:]
}
