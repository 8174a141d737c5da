// Package render turns LaTeX source into a generic HTML fragment.
//
// The renderer understands the standard document commands (sections,
// emphasis, hyperlinks, inline math, a handful of environments) and emits
// an inert marker span for every macro it does not recognize:
//
//	<span class="macro macro-<name>"></span>
//
// Custom résumé macros therefore survive rendering as position markers;
// the transformation pipeline later replaces each marker using argument
// tuples extracted from the raw source. The renderer swallows the brace
// groups following an unknown macro, which keeps the marker count equal
// to the tuple count for well-formed sources.
package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-tex2html/internal/texsrc"
)

// Sentinel errors for render failures.
var (
	ErrEmptyDocument = errors.New("empty latex document")
	ErrUnbalancedEnv = errors.New("unbalanced document environment")
)

// Escaped-character placeholders use Unicode Private Use Area characters
// so escaped %, $, &, # and _ pass untouched through math and macro
// handling, then get restored at the end.
const (
	escPercent    = "\uE010"
	escDollar     = "\uE011"
	escAmpersand  = "\uE012"
	escHash       = "\uE013"
	escUnderscore = "\uE014"
)

// Precompiled patterns.
var (
	commentPattern   = regexp.MustCompile(`(?m)(^|[^\\])%[^\n]*`)
	preamblePattern  = regexp.MustCompile(`\\(?:documentclass|usepackage)(?:\[[^\]]*\])?\{[^}]*\}`)
	metaCmdPattern   = regexp.MustCompile(`\\(?:title|author|date)\{[^}]*\}`)
	inlineMathsubst  = regexp.MustCompile(`\$([^$]*)\$`)
	beginEnvPattern  = regexp.MustCompile(`\\begin\{([a-zA-Z*]+)\}`)
	endEnvPattern    = regexp.MustCompile(`\\end\{([a-zA-Z*]+)\}`)
	lineBreakPattern = regexp.MustCompile(`\\\\(?:\[[^\]]*\])?`)
	vspacePattern    = regexp.MustCompile(`\\vspace\*?\{[^}]*\}`)
	blankLinePattern = regexp.MustCompile(`\n[ \t]*\n+`)
)

// Style switches the renderer drops instead of marking: they change the
// look of surrounding text, carry no arguments and no structure.
var droppedSwitches = []string{
	`\scshape`, `\bfseries`, `\itshape`, `\centering`, `\raggedright`,
	`\noindent`, `\hfill`, `\vfill`, `\small`,
}

// sizeGroups maps a size switch opening a brace group to a span class.
var sizeGroups = map[string]string{
	"Huge":  "textsize-huge",
	"LARGE": "textsize-large",
	"Large": "textsize-large",
	"large": "textsize-large",
}

// Renderer renders LaTeX source into a generic HTML fragment.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render converts src to an HTML fragment. It returns an error for an
// empty document or a \begin{document} without a matching end; any other
// input degrades to generic markup rather than failing.
func (r *Renderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", ErrEmptyDocument
	}

	s := commentPattern.ReplaceAllString(src, "$1")

	body, err := documentBody(s)
	if err != nil {
		return "", err
	}

	s = preamblePattern.ReplaceAllString(body, "")
	s = metaCmdPattern.ReplaceAllString(s, "")

	s = protectEscapes(s)
	s = escapeEntities(s)
	s = inlineMathsubst.ReplaceAllString(s, `<span class="math inline">$1</span>`)
	s = strings.ReplaceAll(s, "~", "&nbsp;")

	s = renderEnvironments(s)
	s = renderSizeGroups(s)
	s = renderSections(s)
	s = renderHyperlinks(s)
	s = renderEmphasis(s)
	s = dropSwitches(s)
	s = vspacePattern.ReplaceAllString(s, `<span class="vspace"></span>`)
	s = lineBreakPattern.ReplaceAllString(s, "<br/>")
	s = renderUnknownMacros(s)
	s = restoreEscapes(s)

	return wrapParagraphs(s), nil
}

// documentBody returns the text between \begin{document} and
// \end{document}, or the whole source when no document environment exists
// (fragment input). A begin without an end is a hard failure.
func documentBody(s string) (string, error) {
	const begin = `\begin{document}`
	const end = `\end{document}`

	i := strings.Index(s, begin)
	if i < 0 {
		return s, nil
	}
	j := strings.Index(s[i:], end)
	if j < 0 {
		return "", fmt.Errorf("%w: missing \\end{document}", ErrUnbalancedEnv)
	}
	return s[i+len(begin) : i+j], nil
}

func protectEscapes(s string) string {
	rep := strings.NewReplacer(
		`\%`, escPercent,
		`\$`, escDollar,
		`\&`, escAmpersand,
		`\#`, escHash,
		`\_`, escUnderscore,
	)
	return rep.Replace(s)
}

func restoreEscapes(s string) string {
	rep := strings.NewReplacer(
		escPercent, "%",
		escDollar, "$",
		escAmpersand, "&amp;",
		escHash, "#",
		escUnderscore, "_",
	)
	return rep.Replace(s)
}

// escapeEntities escapes raw &, < and > before any HTML is injected.
// The raw ampersand is the tabular column separator; it survives as the
// literal entity the contact pass splits on.
func escapeEntities(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// renderEnvironments maps begin/end pairs to container divs. The tabular
// variants additionally consume their width and column-spec groups, leaking
// the column spec as text the way a renderer without table support would.
func renderEnvironments(s string) string {
	s = replaceTabulars(s)
	s = beginEnvPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := beginEnvPattern.FindStringSubmatch(m)[1]
		switch name {
		case "center":
			return "\n<div class=\"center\">"
		case "abstract":
			return "\n<div class=\"abstract\">"
		default:
			return "\n<div class=\"env env-" + strings.TrimSuffix(name, "*") + "\">"
		}
	})
	return endEnvPattern.ReplaceAllString(s, "</div>\n")
}

// replaceTabulars rewrites \begin{tabular}/{tabular*} openings, consuming
// the optional width group and the column-spec group with a brace walk.
func replaceTabulars(s string) string {
	for {
		i := strings.Index(s, `\begin{tabular`)
		if i < 0 {
			return s
		}
		// Past \begin{tabular} or \begin{tabular*}.
		j := strings.Index(s[i:], "}")
		if j < 0 {
			return s
		}
		pos := i + j + 1
		var colspec string
		// Up to two brace groups follow: {width} (tabular* only) and
		// {colspec}. The last one consumed is the column spec.
		for g := 0; g < 2; g++ {
			k := pos
			for k < len(s) && (s[k] == ' ' || s[k] == '\n' || s[k] == '\t') {
				k++
			}
			if k >= len(s) || s[k] != '{' {
				break
			}
			depth := 1
			q := k + 1
			for q < len(s) && depth > 0 {
				switch s[q] {
				case '{':
					depth++
				case '}':
					depth--
				}
				q++
			}
			if depth != 0 {
				break
			}
			colspec = s[k+1 : q-1]
			pos = q
		}
		s = s[:i] + "\n<div class=\"tabular\">" + colspec + s[pos:]
	}
}

// renderSizeGroups converts {\Huge ...}-style groups into size spans.
// A group opened directly after a command name is that command's argument
// (\textbf{\Huge ...}) and is left for the command's own renderer.
func renderSizeGroups(s string) string {
	for sw, class := range sizeGroups {
		token := `{\` + sw
		from := 0
		for {
			i := strings.Index(s[from:], token)
			if i < 0 {
				break
			}
			i += from
			if opensArgument(s, i) {
				from = i + 1
				continue
			}
			depth := 1
			j := i + 1
			for j < len(s) && depth > 0 {
				switch s[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			if depth != 0 {
				break
			}
			inner := strings.TrimSpace(s[i+len(token) : j-1])
			s = s[:i] + `<span class="` + class + `">` + inner + `</span>` + s[j:]
			from = i
		}
	}
	return s
}

// opensArgument reports whether the brace at s[i] directly follows \name
// and so opens that command's argument group. Adjacency matches the
// extractor's invocation token, so the two layers agree on what is an
// argument.
func opensArgument(s string, i int) bool {
	j := i
	for j > 0 && isLetter(s[j-1]) {
		j--
	}
	return j < i && j > 0 && s[j-1] == '\\'
}

func renderSections(s string) string {
	s = replaceCommand(s, "section", 1, func(args []string) string {
		return "\n\n<h3>" + args[0] + "</h3>\n\n"
	})
	return replaceCommand(s, "subsection", 1, func(args []string) string {
		return "\n\n<h4>" + args[0] + "</h4>\n\n"
	})
}

func renderHyperlinks(s string) string {
	return replaceCommand(s, "href", 2, func(args []string) string {
		return `<a href="` + args[0] + `">` + args[1] + `</a>`
	})
}

func renderEmphasis(s string) string {
	s = replaceCommand(s, "textbf", 1, func(args []string) string {
		return "<strong>" + renderBoldInner(args[0]) + "</strong>"
	})
	s = replaceCommand(s, "textit", 1, func(args []string) string {
		return "<em>" + args[0] + "</em>"
	})
	s = replaceCommand(s, "emph", 1, func(args []string) string {
		return "<em>" + args[0] + "</em>"
	})
	s = replaceCommand(s, "uline", 1, func(args []string) string {
		return "<u>" + args[0] + "</u>"
	})
	return replaceCommand(s, "underline", 1, func(args []string) string {
		return "<u>" + args[0] + "</u>"
	})
}

// renderBoldInner handles a size switch opening a bold group, the common
// \textbf{\Huge \scshape Name} contact-name idiom.
func renderBoldInner(arg string) string {
	trimmed := strings.TrimSpace(arg)
	for sw, class := range sizeGroups {
		if rest, ok := strings.CutPrefix(trimmed, `\`+sw); ok {
			return `<span class="` + class + `">` + strings.TrimSpace(rest) + `</span>`
		}
	}
	return arg
}

func dropSwitches(s string) string {
	for _, sw := range droppedSwitches {
		s = strings.ReplaceAll(s, sw+" ", "")
		s = strings.ReplaceAll(s, sw, "")
	}
	return s
}

// replaceCommand rewrites each \name{...} invocation using build. The
// arguments come from the same brace-depth walk the extractor uses, so
// nested groups stay inside a single argument.
func replaceCommand(s, name string, arity int, build func(args []string) string) string {
	invs := texsrc.ExtractInvocations(s, name, arity)
	for _, inv := range invs {
		s = strings.Replace(s, inv.Full, build(inv.Args), 1)
	}
	return s
}

// renderUnknownMacros converts every remaining \name token into a marker
// span, consuming the brace groups that follow it. Whitespace between
// groups is allowed, matching how the extractor walks arguments.
func renderUnknownMacros(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i + 1
		for j < len(s) && isLetter(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		name := s[i+1 : j]
		k := j
		for {
			p := k
			for p < len(s) && isSpace(s[p]) {
				p++
			}
			if p >= len(s) || s[p] != '{' {
				break
			}
			depth := 1
			q := p + 1
			for q < len(s) && depth > 0 {
				switch s[q] {
				case '{':
					depth++
				case '}':
					depth--
				}
				q++
			}
			if depth != 0 {
				break
			}
			k = q
		}
		b.WriteString(`<span class="macro macro-` + name + `"></span>`)
		i = k
	}
	return b.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// wrapParagraphs wraps blank-line separated chunks in <p> elements,
// leaving chunks that already start with block markup bare.
func wrapParagraphs(s string) string {
	chunks := blankLinePattern.Split(s, -1)
	var out []string
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if strings.HasPrefix(chunk, "<h") || strings.HasPrefix(chunk, "<div") ||
			strings.HasPrefix(chunk, "</div") {
			out = append(out, chunk)
			continue
		}
		out = append(out, "<p>"+chunk+"</p>")
	}
	return strings.Join(out, "\n")
}
