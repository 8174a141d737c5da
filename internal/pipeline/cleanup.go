package pipeline

import (
	"regexp"
	"strings"
)

var (
	percentLetterPattern = regexp.MustCompile(`(\d%)(\p{L})`)
	anchorTagPattern     = regexp.MustCompile(`<a ([^>]*)>`)
)

// applyFinalCleanup runs the last cosmetic fixes: a missing space after a
// numeric percentage, leftover vertical-space spans, and external-link
// attributes on absolute anchors. Every rewrite here is idempotent.
func applyFinalCleanup(frag string, _ *Context) string {
	frag = percentLetterPattern.ReplaceAllString(frag, "$1 $2")
	frag = strings.ReplaceAll(frag, `<span class="vspace"></span>`, "")
	frag = emptyStrong.ReplaceAllString(frag, "")
	frag = emptyParagraph.ReplaceAllString(frag, "")

	frag = anchorTagPattern.ReplaceAllStringFunc(frag, func(m string) string {
		attrs := anchorTagPattern.FindStringSubmatch(m)[1]
		if !strings.Contains(attrs, `href="http`) || strings.Contains(attrs, "target=") {
			return m
		}
		return `<a ` + attrs + ` target="_blank" rel="noopener noreferrer">`
	})
	return frag
}
