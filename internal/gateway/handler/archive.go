package handler

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path"
	"strings"

	"siteforge/internal/artifact"
)

// BundleArchive is the read side of the deploy-bundle archive.
type BundleArchive interface {
	Get(ctx context.Context, prefix, filePath string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
	GetURL(ctx context.Context, prefix, filePath string) (string, error)
}

// ArchiveHandler serves archived deployment bundles: the file listing of a
// deployed project and the files themselves, for inspecting exactly what a
// deployment shipped.
type ArchiveHandler struct {
	Archive BundleArchive // nil when archiving is not configured
}

func NewArchiveHandler(archive BundleArchive) *ArchiveHandler {
	return &ArchiveHandler{Archive: archive}
}

type archiveListing struct {
	Project string   `json:"project"`
	Files   []string `json:"files"`
}

// HandleArchive serves GET /v1/archive/{project} as a file listing and
// GET /v1/archive/{project}/{path} as file content. With ?presign=1 the
// file response is a short-lived direct link instead of the bytes.
func (h *ArchiveHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.Archive == nil {
		http.Error(w, "bundle archive is not configured", http.StatusServiceUnavailable)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/archive/"), "/")
	project, filePath, _ := strings.Cut(rest, "/")
	if project == "" {
		http.Error(w, "project name is required", http.StatusBadRequest)
		return
	}

	if filePath == "" {
		files, err := h.Archive.List(r.Context(), project)
		if err != nil {
			http.Error(w, "archive listing failed", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, archiveListing{Project: project, Files: files})
		return
	}

	if r.URL.Query().Get("presign") == "1" {
		url, err := h.Archive.GetURL(r.Context(), project, filePath)
		if err != nil {
			http.Error(w, "presign failed", http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
		return
	}

	data, err := h.Archive.Get(r.Context(), project, filePath)
	if errors.Is(err, artifact.ErrNotFound) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "archive read failed", http.StatusBadGateway)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(filePath))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", ctype)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
