package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/alnah/go-tex2html/internal/audit"
	"github.com/alnah/go-tex2html/internal/drive"
)

// handler serves the converted-document preview API.
type handler struct {
	dir         string // converted HTML, manifest.json, index.html
	sourceDir   string // original .tex sources
	downloadURL string // direct download URL, empty when no link configured
	store       *audit.Store
}

func newHandler(dir, sourceDir, driveLink string, store *audit.Store) (*handler, error) {
	h := &handler{dir: dir, sourceDir: sourceDir, store: store}
	if driveLink != "" {
		url, err := drive.DirectDownloadURL(driveLink)
		if err != nil {
			return nil, err
		}
		h.downloadURL = url
	}
	return h, nil
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /api/manifest", h.handleManifest)
	mux.HandleFunc("GET /api/documents", h.handleListDocuments)
	mux.HandleFunc("GET /api/documents/{id}/attempts", h.handleAttempts)
	mux.HandleFunc("GET /api/stats", h.handleStats)
	mux.HandleFunc("GET /source/{name}", h.handleSource)
	mux.HandleFunc("GET /download", h.handleDownload)
	mux.Handle("GET /", http.FileServer(http.Dir(h.dir)))
	return mux
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/manifest
// Serves manifest.json from the output directory as-is.
func (h *handler) handleManifest(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(h.dir, "manifest.json"))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "no manifest: run tex2html first")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read manifest")
		slog.Error("reading manifest", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// GET /api/documents
func (h *handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "audit log not configured")
		return
	}
	docs, err := h.store.ListDocuments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		slog.Error("list documents error", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// GET /api/documents/{id}/attempts
func (h *handler) handleAttempts(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "audit log not configured")
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	attempts, err := h.store.Attempts(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list attempts")
		slog.Error("list attempts error", "document_id", id, "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

// GET /api/stats
func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "audit log not configured")
		return
	}
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read stats")
		slog.Error("stats error", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /source/{name}
// Renders a .tex source with syntax highlighting. The name is stripped
// to its base so the source directory cannot be escaped.
func (h *handler) handleSource(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.PathValue("name"))
	if !strings.HasSuffix(name, ".tex") {
		name += ".tex"
	}

	src, err := os.ReadFile(filepath.Join(h.sourceDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "source not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read source")
		slog.Error("reading source", "name", name, "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := quick.Highlight(w, string(src), "latex", "html", "github"); err != nil {
		slog.Error("highlighting source", "name", name, "error", err)
	}
}

// GET /download
// Redirects to the configured direct download URL for the LaTeX source.
func (h *handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	if h.downloadURL == "" {
		writeError(w, http.StatusNotFound, "no download link configured")
		return
	}
	http.Redirect(w, r, h.downloadURL, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
