package tex2html

import "github.com/alnah/go-tex2html/internal/texsrc"

// Input holds one LaTeX document to convert.
type Input struct {
	// Source is the raw LaTeX content.
	Source string

	// Path is the original file path. Optional; used for warnings and
	// audit records.
	Path string
}

// Metadata re-exports the extracted document metadata.
type Metadata = texsrc.Metadata

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	// HTML is the complete wrapped document.
	HTML string

	// Fragment is the converted body before shell wrapping, useful for
	// embedding into other pages.
	Fragment string

	// Metadata extracted from the source preamble.
	Metadata Metadata

	// Warnings lists non-fatal problems, such as macro markers that
	// could not be matched to argument tuples.
	Warnings []string
}

// FragmentRenderer turns raw LaTeX into a generic HTML fragment.
// Satisfied by render.Renderer; injectable for tests.
type FragmentRenderer interface {
	Render(src string) (string, error)
}
