// Package texsrc extracts structure from raw LaTeX source text: argument
// tuples for custom macro invocations, and document metadata from the
// standard \title, \author and \date commands.
//
// Extraction works on the source text directly, in parallel to the generic
// HTML rendering. The transformation pipeline reconciles both: each macro
// marker in the rendered HTML consumes one invocation tuple, in source
// order.
package texsrc

import "strings"

// Invocation is one occurrence of a custom macro in source order.
// Args holds the brace-delimited arguments with surrounding whitespace
// trimmed; nested brace groups inside an argument are preserved verbatim.
type Invocation struct {
	Full string
	Args []string
}

// ExtractInvocations scans src left to right for invocations of
// \<name>{...} with exactly arity brace-delimited arguments and returns
// them in source order.
//
// Arguments are collected with a brace-depth walk, so an argument may
// itself contain commands with brace groups (e.g. \href{url}{text}).
// An occurrence that runs out of text before arity arguments complete is
// dropped. The scan is single-pass: text consumed by one invocation is
// never revisited.
func ExtractInvocations(src, name string, arity int) []Invocation {
	// The trailing brace keeps \resumeQuadHeading from matching the
	// longer \resumeQuadHeadingChild.
	token := `\` + name + `{`

	var invs []Invocation
	pos := 0
	for {
		rel := strings.Index(src[pos:], token)
		if rel < 0 {
			break
		}
		start := pos + rel
		args, end, ok := walkArguments(src, start+len(token)-1, arity)
		if !ok {
			// Incomplete invocation: drop it and stop, the remaining
			// text cannot contain a complete one either.
			break
		}
		invs = append(invs, Invocation{Full: src[start:end], Args: args})
		pos = end
	}
	return invs
}

// walkArguments collects arity brace groups starting at the opening brace
// at src[open]. It returns the trimmed arguments and the index just past
// the final closing brace. ok is false when the text ends first.
func walkArguments(src string, open, arity int) (args []string, end int, ok bool) {
	i := open
	for n := 0; n < arity; n++ {
		if i >= len(src) || src[i] != '{' {
			return nil, 0, false
		}
		depth := 1
		j := i + 1
		for j < len(src) && depth > 0 {
			switch src[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			return nil, 0, false
		}
		args = append(args, strings.TrimSpace(src[i+1:j-1]))
		i = j
		if n == arity-1 {
			break
		}
		// Skip to the next opening brace; arguments may be separated by
		// whitespace or line breaks in the source.
		for i < len(src) && src[i] != '{' {
			i++
		}
	}
	return args, i, true
}

// Cursor yields the invocations of one macro name in source order.
// Each transformation pass consumes tuples positionally through its own
// cursor, so a marker/tuple count mismatch surfaces as an exhausted
// cursor rather than a hidden shared counter.
type Cursor struct {
	invs []Invocation
	next int
}

// NewCursor creates a cursor over invs.
func NewCursor(invs []Invocation) *Cursor {
	return &Cursor{invs: invs}
}

// Next returns the next unconsumed invocation. ok is false once the
// cursor is exhausted; callers degrade gracefully in that case.
func (c *Cursor) Next() (Invocation, bool) {
	if c == nil || c.next >= len(c.invs) {
		return Invocation{}, false
	}
	inv := c.invs[c.next]
	c.next++
	return inv, true
}

// Remaining reports how many invocations have not been consumed.
func (c *Cursor) Remaining() int {
	if c == nil {
		return 0
	}
	return len(c.invs) - c.next
}
