package texsrc

import "testing"

func TestExtractInvocations(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		macro string
		arity int
		want  [][]string
	}{
		{
			name:  "no occurrences",
			src:   `\section{Projects}`,
			macro: "resumeTrioHeading",
			arity: 3,
			want:  nil,
		},
		{
			name:  "single occurrence",
			src:   `\resumeTrioHeading{App}{Go, SQLite}{example.com}`,
			macro: "resumeTrioHeading",
			arity: 3,
			want:  [][]string{{"App", "Go, SQLite", "example.com"}},
		},
		{
			name: "multiple occurrences in source order",
			src: `\resumeTrioHeading{First}{A}{x}
text between
\resumeTrioHeading{Second}{B}{y}
\resumeTrioHeading{Third}{C}{z}`,
			macro: "resumeTrioHeading",
			arity: 3,
			want: [][]string{
				{"First", "A", "x"},
				{"Second", "B", "y"},
				{"Third", "C", "z"},
			},
		},
		{
			name:  "nested brace group preserved verbatim",
			src:   `\resumeTrioHeading{outer {inner} text}{tech}{\href{https://x.com}{\uline{Link}}}`,
			macro: "resumeTrioHeading",
			arity: 3,
			want:  [][]string{{"outer {inner} text", "tech", `\href{https://x.com}{\uline{Link}}`}},
		},
		{
			name: "arguments split across lines",
			src: `\resumeQuadHeading{Institute of Things}{Lagos, Nigeria}
{B.Sc in Computer Science}{Oct 2015 -- Sept 2019}`,
			macro: "resumeQuadHeading",
			arity: 4,
			want:  [][]string{{"Institute of Things", "Lagos, Nigeria", "B.Sc in Computer Science", "Oct 2015 -- Sept 2019"}},
		},
		{
			name:  "surrounding whitespace trimmed",
			src:   "\\resumeSectionType{ Languages }{:}{\n  Go, Python\n}",
			macro: "resumeSectionType",
			arity: 3,
			want:  [][]string{{"Languages", ":", "Go, Python"}},
		},
		{
			name:  "truncated invocation dropped",
			src:   `\resumeTrioHeading{App}{Go, SQLite`,
			macro: "resumeTrioHeading",
			arity: 3,
			want:  nil,
		},
		{
			name:  "unbalanced braces dropped",
			src:   `\resumeTrioHeading{App}{Go {SQLite}{link}`,
			macro: "resumeTrioHeading",
			arity: 3,
			want:  nil,
		},
		{
			name:  "shorter macro name does not match longer one",
			src:   `\resumeQuadHeadingChild{Role}{2020 -- 2021}{Engineer}`,
			macro: "resumeQuadHeading",
			arity: 4,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractInvocations(tt.src, tt.macro, tt.arity)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d invocations, want %d", len(got), len(tt.want))
			}
			for i, inv := range got {
				if len(inv.Args) != len(tt.want[i]) {
					t.Fatalf("invocation %d: got %d args, want %d", i, len(inv.Args), len(tt.want[i]))
				}
				for j, arg := range inv.Args {
					if arg != tt.want[i][j] {
						t.Errorf("invocation %d arg %d = %q, want %q", i, j, arg, tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestExtractInvocationsFullText(t *testing.T) {
	src := `before \resumeTrioHeading{A}{B}{C} after`
	invs := ExtractInvocations(src, "resumeTrioHeading", 3)
	if len(invs) != 1 {
		t.Fatalf("got %d invocations, want 1", len(invs))
	}
	want := `\resumeTrioHeading{A}{B}{C}`
	if invs[0].Full != want {
		t.Errorf("Full = %q, want %q", invs[0].Full, want)
	}
}

func TestCursor(t *testing.T) {
	invs := []Invocation{
		{Args: []string{"first"}},
		{Args: []string{"second"}},
	}
	c := NewCursor(invs)

	if got := c.Remaining(); got != 2 {
		t.Errorf("Remaining() = %d, want 2", got)
	}

	inv, ok := c.Next()
	if !ok || inv.Args[0] != "first" {
		t.Errorf("first Next() = %v, %v", inv.Args, ok)
	}
	inv, ok = c.Next()
	if !ok || inv.Args[0] != "second" {
		t.Errorf("second Next() = %v, %v", inv.Args, ok)
	}
	if _, ok := c.Next(); ok {
		t.Error("exhausted cursor returned ok = true")
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("Remaining() after exhaustion = %d, want 0", got)
	}
}

func TestCursorNil(t *testing.T) {
	var c *Cursor
	if _, ok := c.Next(); ok {
		t.Error("nil cursor returned ok = true")
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("nil cursor Remaining() = %d, want 0", got)
	}
}
