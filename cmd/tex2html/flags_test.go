package main

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	flags, args, err := parseFlags([]string{"resume.tex"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if len(args) != 1 || args[0] != "resume.tex" {
		t.Errorf("args = %v, want [resume.tex]", args)
	}
	if flags.output != "" || flags.pdf || flags.index {
		t.Errorf("unexpected non-default flags: %+v", flags)
	}
	if flags.readme != "README.md" {
		t.Errorf("readme = %q, want README.md", flags.readme)
	}
}

func TestParseFlagsAll(t *testing.T) {
	flags, args, err := parseFlags([]string{
		"-o", "out",
		"-c", "custom",
		"--style", "resume",
		"--asset-path", "assets",
		"--audit-db", "audit.db",
		"--pdf",
		"-t", "45s",
		"--drive-link", "https://drive.google.com/file/d/abc123DEF456/view",
		"--index",
		"--readme", "docs/README.md",
		"-q",
		"a.tex", "b.tex",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if flags.output != "out" {
		t.Errorf("output = %q, want out", flags.output)
	}
	if flags.config != "custom" {
		t.Errorf("config = %q, want custom", flags.config)
	}
	if flags.style != "resume" {
		t.Errorf("style = %q, want resume", flags.style)
	}
	if flags.assetPath != "assets" {
		t.Errorf("assetPath = %q, want assets", flags.assetPath)
	}
	if flags.auditDB != "audit.db" {
		t.Errorf("auditDB = %q, want audit.db", flags.auditDB)
	}
	if !flags.pdf {
		t.Error("pdf = false, want true")
	}
	if flags.pdfTimeout != "45s" {
		t.Errorf("pdfTimeout = %q, want 45s", flags.pdfTimeout)
	}
	if !flags.index {
		t.Error("index = false, want true")
	}
	if flags.readme != "docs/README.md" {
		t.Errorf("readme = %q, want docs/README.md", flags.readme)
	}
	if !flags.quiet {
		t.Error("quiet = false, want true")
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want two positional files", args)
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	if _, _, err := parseFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("parseFlags() with unknown flag should fail")
	}
}
