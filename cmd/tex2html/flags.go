package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the tex2html CLI.
type cliFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool

	output     string
	style      string
	assetPath  string
	auditDB    string
	pdf        bool
	pdfTimeout string
	driveLink  string
	index      bool
	readme     string
}

// parseFlags parses CLI flags and returns positional args (files or
// directories of .tex sources).
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("tex2html", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-document details and warnings")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: next to sources)")
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.auditDB, "audit-db", "", "SQLite audit log path")
	fs.BoolVar(&f.pdf, "pdf", false, "also render each document to PDF")
	fs.StringVarP(&f.pdfTimeout, "pdf-timeout", "t", "", "PDF rendering timeout per document (e.g., 30s)")
	fs.StringVar(&f.driveLink, "drive-link", "", "cloud-drive share link for the source download button")
	fs.BoolVar(&f.index, "index", false, "generate index.html from the readme and converted documents")
	fs.StringVar(&f.readme, "readme", "README.md", "readme used for the index page")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: tex2html [flags] [file.tex | dir]...

Converts LaTeX résumé sources to styled standalone HTML.

Flags:
  -o, --output dir        output directory (default: next to sources)
  -c, --config name       config file name or path
      --style name        stylesheet name
      --asset-path dir    custom asset directory
      --audit-db path     SQLite audit log path
      --pdf               also render each document to PDF
  -t, --pdf-timeout dur   PDF rendering timeout per document (e.g., 30s)
      --drive-link url    cloud-drive share link for the download button
      --index             generate index.html
      --readme path       readme used for the index page (default README.md)
  -q, --quiet             only show errors
  -v, --verbose           show per-document details and warnings
      --version           print version and exit
`)
}
