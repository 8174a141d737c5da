package pipeline

import (
	"strings"
	"testing"
)

func TestApplyItemLists(t *testing.T) {
	start := Marker(MacroItemListStart)
	item := Marker(MacroItem)
	end := Marker(MacroItemListEnd)

	tests := []struct {
		name string
		frag string
		want []string
		not  []string
	}{
		{
			name: "empty first segment dropped",
			frag: start + item + " Shipped A " + item + " Shipped B " + end,
			want: []string{
				`<ul class="item-list"><li>Shipped A</li><li>Shipped B</li></ul>`,
			},
		},
		{
			name: "two lists in one fragment",
			frag: start + item + "x" + end + " mid " + start + item + "y" + end,
			want: []string{"<li>x</li>", " mid ", "<li>y</li>"},
		},
		{
			name: "unmatched start halts the pass",
			frag: "before " + start + item + "orphan",
			want: []string{start, "orphan"},
			not:  []string{"<ul"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyItemLists(tt.frag, nil)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q\noutput: %s", w, got)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(got, n) {
					t.Errorf("output should not contain %q\noutput: %s", n, got)
				}
			}
		})
	}
}

func TestApplyItemListsUnmatchedStartLeavesRestUntouched(t *testing.T) {
	frag := "a " + Marker(MacroItemListStart) + " b " + Marker(MacroItem) + " c"
	if got := applyItemLists(frag, nil); got != frag {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestApplyHeadingListWrapper(t *testing.T) {
	frag := Marker(MacroHeadingListStart) + "entries" + Marker(MacroHeadingListEnd)
	want := `<div class="heading-list">entries</div>`
	if got := applyHeadingListWrapper(frag, nil); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyParagraphCleanup(t *testing.T) {
	tests := []struct {
		name string
		frag string
		want string
	}{
		{
			name: "paragraph around list unwrapped",
			frag: `<p><ul class="item-list"><li>x</li></ul></p>`,
			want: `<ul class="item-list"><li>x</li></ul>`,
		},
		{
			name: "paragraph around div unwrapped",
			frag: "<p>\n<div class=\"entry\">x</div>\n</p>",
			want: `<div class="entry">x</div>`,
		},
		{
			name: "empty paragraph removed",
			frag: "a<p>  \n </p>b",
			want: "ab",
		},
		{
			name: "normal paragraph kept",
			frag: "<p>text</p>",
			want: "<p>text</p>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyParagraphCleanup(tt.frag, nil); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
