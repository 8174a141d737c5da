package pipeline

import (
	"regexp"
	"strings"
)

// applyItemLists pairs each list-start marker with the first list-end
// marker after it and rewrites the region as a <ul>, splitting on item
// markers and dropping empty segments. A start marker with no matching
// end halts the pass; the remainder of the fragment is left untouched.
func applyItemLists(frag string, _ *Context) string {
	var (
		startMarker = Marker(MacroItemListStart)
		itemMarker  = Marker(MacroItem)
		endMarker   = Marker(MacroItemListEnd)
	)

	var b strings.Builder
	pos := 0
	for {
		rel := strings.Index(frag[pos:], startMarker)
		if rel < 0 {
			b.WriteString(frag[pos:])
			break
		}
		start := pos + rel
		bodyStart := start + len(startMarker)
		endRel := strings.Index(frag[bodyStart:], endMarker)
		if endRel < 0 {
			b.WriteString(frag[pos:])
			break
		}
		bodyEnd := bodyStart + endRel

		b.WriteString(frag[pos:start])
		b.WriteString(`<ul class="item-list">`)
		for _, seg := range strings.Split(frag[bodyStart:bodyEnd], itemMarker) {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			b.WriteString("<li>" + seg + "</li>")
		}
		b.WriteString("</ul>")
		pos = bodyEnd + len(endMarker)
	}
	return b.String()
}

// applyHeadingListWrapper maps heading-list delimiters one to one onto a
// wrapper div. Delimiters without a partner simply leave the div
// unbalanced in source order, mirroring the input.
func applyHeadingListWrapper(frag string, _ *Context) string {
	frag = strings.ReplaceAll(frag, Marker(MacroHeadingListStart), `<div class="heading-list">`)
	frag = strings.ReplaceAll(frag, Marker(MacroHeadingListEnd), `</div>`)
	return frag
}

var (
	pOpenBeforeBlock  = regexp.MustCompile(`<p>\s*(<(?:ul|div)\b)`)
	blockBeforePClose = regexp.MustCompile(`(</(?:ul|div)>)\s*</p>`)
	emptyParagraph    = regexp.MustCompile(`<p>\s*</p>`)
)

// applyParagraphCleanup removes paragraph tags that the block rewrites
// above turned invalid: a <p> that now opens directly onto a list or div,
// its matching close, and paragraphs left empty.
func applyParagraphCleanup(frag string, _ *Context) string {
	frag = pOpenBeforeBlock.ReplaceAllString(frag, "$1")
	frag = blockBeforePClose.ReplaceAllString(frag, "$1")
	frag = emptyParagraph.ReplaceAllString(frag, "")
	return frag
}
