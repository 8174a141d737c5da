package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/assets"
	"github.com/alnah/go-tex2html/internal/audit"
	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/fileutil"
	"github.com/alnah/go-tex2html/internal/shell"
)

// batch holds everything one CLI invocation needs.
type batch struct {
	flags   *cliFlags
	cfg     *config.Config
	conv    *tex2html.Converter
	wrapper *shell.Wrapper
	printer *tex2html.PDFPrinter
	store   *audit.Store
	outDir  string
	stderr  io.Writer
}

// run drives one CLI invocation: flag parsing, config, conversion of
// every input, manifest, and the optional index page. A document that
// fails to convert is reported and skipped; the batch still fails
// closed with a non-zero exit when any document failed.
func run(argv []string, stdout, stderr io.Writer) error {
	flags, args, err := parseFlags(argv[1:])
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Fprintln(stdout, Version)
		return nil
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return err
		}
	}
	mergeFlags(cfg, flags)

	inputs, err := collectInputs(args, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}

	b, err := newBatch(flags, cfg, stderr)
	if err != nil {
		return err
	}
	defer b.close()

	ctx := context.Background()
	var entries []ManifestEntry
	failed := 0
	for _, path := range inputs {
		entry, err := b.convertOne(ctx, path)
		if err != nil {
			failed++
			fmt.Fprintf(stderr, "error: %s: %v\n", path, err)
			continue
		}
		entries = append(entries, entry)
		if !flags.quiet {
			fmt.Fprintf(stdout, "converted %s -> %s\n", path, entry.HTMLPath)
		}
	}

	if err := writeManifest(b.outDir, entries); err != nil {
		return err
	}
	if flags.index {
		page, err := buildIndexHTML(b.wrapper, flags.readme, cfg.Drive.ShareLink, entries)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFile(filepath.Join(b.outDir, "index.html"), []byte(page)); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(inputs))
	}
	return nil
}

// mergeFlags overlays explicit flags on the loaded config.
func mergeFlags(cfg *config.Config, flags *cliFlags) {
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.style != "" {
		cfg.Style.Name = flags.style
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.auditDB != "" {
		cfg.Audit.DBPath = flags.auditDB
	}
	if flags.pdf {
		cfg.PDF.Enabled = true
	}
	if flags.driveLink != "" {
		cfg.Drive.ShareLink = flags.driveLink
	}
}

// collectInputs expands positional args (files or directories) into the
// list of .tex sources, falling back to the configured input directory.
func collectInputs(args []string, defaultDir string) ([]string, error) {
	if len(args) == 0 {
		if defaultDir == "" {
			return nil, ErrNoInput
		}
		args = []string{defaultDir}
	}

	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
		}
		if info.IsDir() {
			files, err := fileutil.ListByExt(arg, ".tex")
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
			}
			inputs = append(inputs, files...)
			continue
		}
		inputs = append(inputs, arg)
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	return inputs, nil
}

func newBatch(flags *cliFlags, cfg *config.Config, stderr io.Writer) (*batch, error) {
	var shellOpts []shell.Option
	if cfg.Assets.BasePath != "" {
		loader, err := assets.NewFilesystemLoader(cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		shellOpts = append(shellOpts, shell.WithLoader(loader))
	}
	if cfg.Style.Name != "" {
		shellOpts = append(shellOpts, shell.WithStyleName(cfg.Style.Name))
	}

	wrapper, err := shell.New(shellOpts...)
	if err != nil {
		return nil, err
	}
	conv, err := tex2html.NewConverter(tex2html.WithWrapper(wrapper))
	if err != nil {
		return nil, err
	}

	b := &batch{
		flags:   flags,
		cfg:     cfg,
		conv:    conv,
		wrapper: wrapper,
		outDir:  cfg.Output.DefaultDir,
		stderr:  stderr,
	}
	if b.outDir == "" {
		b.outDir = "."
	}

	if cfg.PDF.Enabled {
		timeout := cfg.PDF.Timeout
		if flags.pdfTimeout != "" {
			timeout, err = time.ParseDuration(flags.pdfTimeout)
			if err != nil || timeout <= 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.pdfTimeout)
			}
		}
		if timeout <= 0 {
			timeout = config.DefaultPDFTimeout
		}
		cfg.PDF.Timeout = timeout
		b.printer = tex2html.NewPDFPrinter(timeout)
	}

	if cfg.Audit.DBPath != "" {
		store, err := audit.Open(cfg.Audit.DBPath)
		if err != nil {
			return nil, err
		}
		b.store = store
	}
	return b, nil
}

func (b *batch) close() {
	if b.printer != nil {
		b.printer.Close()
	}
	if b.store != nil {
		b.store.Close()
	}
}

// convertOne converts a single source file, writes the outputs, and
// records the attempt in the audit log when auditing is enabled.
func (b *batch) convertOne(ctx context.Context, path string) (ManifestEntry, error) {
	src, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	start := time.Now()
	res, err := b.conv.Convert(ctx, tex2html.Input{Source: string(src), Path: path})
	if err != nil {
		b.recordAttempt(ctx, path, tex2html.Metadata{}, audit.StatusFailure, err.Error(), "", time.Since(start))
		return ManifestEntry{}, err
	}

	if b.flags.verbose {
		for _, w := range res.Warnings {
			fmt.Fprintf(b.stderr, "warning: %s: %s\n", path, w)
		}
	}

	outPath := fileutil.OutputPath(b.outDir, path, ".html")
	if err := fileutil.WriteFile(outPath, []byte(res.HTML)); err != nil {
		b.recordAttempt(ctx, path, res.Metadata, audit.StatusFailure, err.Error(), "", time.Since(start))
		return ManifestEntry{}, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if b.printer != nil {
		pdfCtx, cancel := context.WithTimeout(ctx, b.cfg.PDF.Timeout)
		pdfBytes, err := b.printer.Print(pdfCtx, res.HTML)
		cancel()
		if err != nil {
			b.recordAttempt(ctx, path, res.Metadata, audit.StatusFailure, err.Error(), outPath, time.Since(start))
			return ManifestEntry{}, err
		}
		pdfPath := fileutil.OutputPath(b.outDir, path, ".pdf")
		if err := fileutil.WriteFile(pdfPath, pdfBytes); err != nil {
			return ManifestEntry{}, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	b.recordAttempt(ctx, path, res.Metadata, audit.StatusSuccess, "", outPath, time.Since(start))

	return ManifestEntry{
		ID:                     fileutil.Stem(path),
		Filename:               filepath.Base(path),
		Title:                  res.Metadata.Title,
		Author:                 res.Metadata.Author,
		Date:                   res.Metadata.Date,
		HTMLPath:               filepath.Base(outPath),
		LastConvertedTimestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// recordAttempt writes to the audit log; audit failures are reported
// but never fail the conversion itself.
func (b *batch) recordAttempt(ctx context.Context, path string, meta tex2html.Metadata, status, detail, outPath string, duration time.Duration) {
	if b.store == nil {
		return
	}
	docID, err := b.store.UpsertDocument(ctx, audit.Document{
		Path:     path,
		Filename: filepath.Base(path),
		Title:    meta.Title,
		Author:   meta.Author,
	})
	if err == nil {
		_, err = b.store.RecordAttempt(ctx, audit.Attempt{
			DocumentID: docID,
			Status:     status,
			Detail:     detail,
			OutputPath: outPath,
			DurationMS: duration.Milliseconds(),
		})
	}
	if err != nil {
		fmt.Fprintf(b.stderr, "warning: audit log: %v\n", err)
	}
}
