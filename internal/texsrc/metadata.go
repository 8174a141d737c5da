package texsrc

import (
	"regexp"
	"time"
)

// Defaults used when the corresponding command is absent from the source.
const (
	DefaultTitle  = "Untitled Document"
	DefaultAuthor = "Unknown Author"
)

// Metadata holds the document identity pulled from the preamble.
type Metadata struct {
	Title  string
	Author string
	Date   string
}

// Single-level brace capture is deliberate: \title, \author and \date
// arguments are conventionally flat text, unlike the custom macros handled
// by ExtractInvocations.
var (
	titlePattern  = regexp.MustCompile(`\\title\{([^}]*)\}`)
	authorPattern = regexp.MustCompile(`\\author\{([^}]*)\}`)
	datePattern   = regexp.MustCompile(`\\date\{([^}]*)\}`)
)

// ExtractMetadata pulls title, author and date from src. Missing commands
// fall back to fixed defaults; a missing \date falls back to now formatted
// as YYYY-MM-DD.
func ExtractMetadata(src string, now time.Time) Metadata {
	meta := Metadata{
		Title:  DefaultTitle,
		Author: DefaultAuthor,
		Date:   now.Format("2006-01-02"),
	}
	if m := titlePattern.FindStringSubmatch(src); m != nil {
		meta.Title = m[1]
	}
	if m := authorPattern.FindStringSubmatch(src); m != nil {
		meta.Author = m[1]
	}
	if m := datePattern.FindStringSubmatch(src); m != nil {
		meta.Date = m[1]
	}
	return meta
}
