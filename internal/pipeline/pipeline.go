package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-tex2html/internal/texsrc"
)

// Macro names the pipeline rebuilds from markers. They mirror the custom
// commands of the résumé document class the converter targets.
const (
	MacroMaketitle        = "maketitle"
	MacroTrioHeading      = "resumeTrioHeading"
	MacroQuadHeading      = "resumeQuadHeading"
	MacroQuadHeadingChild = "resumeQuadHeadingChild"
	MacroSectionType      = "resumeSectionType"
	MacroItemListStart    = "resumeItemListStart"
	MacroItem             = "resumeItem"
	MacroItemListEnd      = "resumeItemListEnd"
	MacroHeadingListStart = "resumeHeadingListStart"
	MacroHeadingListEnd   = "resumeHeadingListEnd"
)

// Arities of the tuple-bearing macros, used when extracting argument
// tuples from the raw source.
const (
	TrioArity      = 3
	QuadArity      = 4
	QuadChildArity = 3
	SectionArity   = 3
)

// Marker returns the placeholder span the generic renderer emits for an
// unknown macro invocation of the given name.
func Marker(name string) string {
	return `<span class="macro macro-` + name + `"></span>`
}

// Context carries the document metadata and the per-macro argument
// cursors the passes consume from. Nil cursors behave as exhausted.
type Context struct {
	Meta texsrc.Metadata

	Trio      *texsrc.Cursor
	Quad      *texsrc.Cursor
	QuadChild *texsrc.Cursor
	Skills    *texsrc.Cursor
}

// NewContext builds a Context from the raw source, extracting metadata
// and one argument-tuple cursor per tuple-bearing macro.
func NewContext(src string, meta texsrc.Metadata) *Context {
	return &Context{
		Meta:      meta,
		Trio:      texsrc.NewCursor(texsrc.ExtractInvocations(src, MacroTrioHeading, TrioArity)),
		Quad:      texsrc.NewCursor(texsrc.ExtractInvocations(src, MacroQuadHeading, QuadArity)),
		QuadChild: texsrc.NewCursor(texsrc.ExtractInvocations(src, MacroQuadHeadingChild, QuadChildArity)),
		Skills:    texsrc.NewCursor(texsrc.ExtractInvocations(src, MacroSectionType, SectionArity)),
	}
}

// Pass is one named rewriting step over the HTML fragment.
type Pass struct {
	Name  string
	Apply func(frag string, pc *Context) string
}

// Passes returns the rewriting steps in their required order.
func Passes() []Pass {
	return []Pass{
		{Name: "title-block", Apply: applyTitleBlock},
		{Name: "heading-promotion", Apply: applyHeadingPromotion},
		{Name: "abstract-heading", Apply: applyAbstractHeading},
		{Name: "math-pipe-separator", Apply: applyMathPipeSeparator},
		{Name: "contact-header", Apply: applyContactHeader},
		{Name: "trio-headings", Apply: applyTrioHeadings},
		{Name: "quad-details", Apply: applyQuadDetails},
		{Name: "date-merge-fix", Apply: applyDateMergeFix},
		{Name: "skills-table", Apply: applySkillsTable},
		{Name: "education-quads", Apply: applyEducationQuads},
		{Name: "item-lists", Apply: applyItemLists},
		{Name: "heading-list-wrapper", Apply: applyHeadingListWrapper},
		{Name: "paragraph-cleanup", Apply: applyParagraphCleanup},
		{Name: "icons", Apply: applyIcons},
		{Name: "final-cleanup", Apply: applyFinalCleanup},
	}
}

// Run folds the fragment through every pass in order.
func Run(frag string, pc *Context) string {
	for _, p := range Passes() {
		frag = p.Apply(frag, pc)
	}
	return frag
}

// replaceEachMarker rewrites occurrences of the marker for name in source
// order. build returns the replacement for the next occurrence; when it
// reports false the marker is left in place and scanning continues after
// it, so a desync never consumes tuples belonging to later markers.
func replaceEachMarker(frag, name string, build func() (string, bool)) string {
	marker := Marker(name)
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
		if out, ok := build(); ok {
			b.WriteString(out)
		} else {
			b.WriteString(marker)
		}
		pos = i + len(marker)
	}
	return b.String()
}

var leftoverMarkerPattern = regexp.MustCompile(`class="macro macro-([A-Za-z@]+)"`)

// LeftoverMarkers reports the macro names of markers still present after
// the pipeline ran, one entry per name in first-occurrence order. A
// non-empty result signals a desync or an unhandled macro.
func LeftoverMarkers(frag string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range leftoverMarkerPattern.FindAllStringSubmatch(frag, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// UnconsumedTuples reports how many extracted argument tuples each cursor
// still holds after the pipeline ran. Non-zero counts signal a desync.
func UnconsumedTuples(pc *Context) map[string]int {
	counts := make(map[string]int)
	for name, c := range map[string]*texsrc.Cursor{
		MacroTrioHeading:      pc.Trio,
		MacroQuadHeading:      pc.Quad,
		MacroQuadHeadingChild: pc.QuadChild,
		MacroSectionType:      pc.Skills,
	} {
		if n := c.Remaining(); n > 0 {
			counts[name] = n
		}
	}
	return counts
}
