// Package drive rewrites Google Drive share links into direct download
// URLs so the generated pages can offer the original .tex source.
package drive

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrUnrecognizedLink indicates the share link carries no extractable
// file id.
var ErrUnrecognizedLink = errors.New("unrecognized drive link")

var (
	// /file/d/<id>/... share links.
	filePathPattern = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)
	// Bare ids pasted without a URL.
	bareIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)
)

// FileID extracts the file id from a share link. Accepted shapes:
// https://drive.google.com/file/d/<id>/view, open?id=<id>,
// uc?id=<id>, and a bare id.
func FileID(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("%w: empty link", ErrUnrecognizedLink)
	}

	if bareIDPattern.MatchString(link) {
		return link, nil
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnrecognizedLink, err)
	}
	if m := filePathPattern.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}
	if id := u.Query().Get("id"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnrecognizedLink, link)
}

// DirectDownloadURL rewrites a share link into a direct download URL.
func DirectDownloadURL(link string) (string, error) {
	id, err := FileID(link)
	if err != nil {
		return "", err
	}
	return "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(id), nil
}
