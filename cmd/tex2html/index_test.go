package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-tex2html/internal/shell"
)

func newTestWrapper(t *testing.T) *shell.Wrapper {
	t.Helper()
	wrapper, err := shell.New()
	if err != nil {
		t.Fatalf("shell.New() error = %v", err)
	}
	return wrapper
}

func TestBuildIndexHTML(t *testing.T) {
	dir := t.TempDir()
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# My Résumés\n\nSome *notes*.\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	entries := []ManifestEntry{
		{Title: "Jane Doe", HTMLPath: "resume.html", LastConvertedTimestamp: "2025-03-14T10:00:00Z"},
	}

	page, err := buildIndexHTML(newTestWrapper(t), readme,
		"https://drive.google.com/file/d/abc123DEF456/view", entries)
	if err != nil {
		t.Fatalf("buildIndexHTML() error = %v", err)
	}

	for _, want := range []string{
		"My Résumés</h1>",
		"<em>notes</em>",
		"<h2>Documents</h2>",
		`<a href="resume.html">Jane Doe</a>`,
		`<span class="entry-date">2025-03-14T10:00:00Z</span>`,
		`class="download-button"`,
		"uc?export=download&amp;id=abc123DEF456",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestBuildIndexHTMLMissingReadme(t *testing.T) {
	page, err := buildIndexHTML(newTestWrapper(t), "does-not-exist.md", "", nil)
	if err != nil {
		t.Fatalf("buildIndexHTML() error = %v", err)
	}
	if !strings.Contains(page, "No documents converted yet.") {
		t.Error("index without entries should say so")
	}
	if strings.Contains(page, "download-button") {
		t.Error("index without a drive link should have no download button")
	}
}

func TestBuildIndexHTMLBadDriveLink(t *testing.T) {
	if _, err := buildIndexHTML(newTestWrapper(t), "", "http://example.com/nope", nil); err == nil {
		t.Error("buildIndexHTML() with unrecognized link should fail")
	}
}
