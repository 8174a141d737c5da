package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-tex2html/internal/fileutil"
)

// ManifestEntry describes one converted document in manifest.json.
type ManifestEntry struct {
	ID                     string `json:"id"`
	Filename               string `json:"filename"`
	Title                  string `json:"title"`
	Author                 string `json:"author"`
	Date                   string `json:"date"`
	HTMLPath               string `json:"htmlPath"`
	LastConvertedTimestamp string `json:"lastConvertedTimestamp"`
}

// manifestName is the fixed manifest file name in the output directory.
const manifestName = "manifest.json"

// writeManifest serialises the entries as an indented JSON array.
func writeManifest(dir string, entries []ManifestEntry) error {
	// An empty batch still writes a valid empty array.
	if entries == nil {
		entries = []ManifestEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding manifest: %v", ErrWriteOutput, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, manifestName)
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
