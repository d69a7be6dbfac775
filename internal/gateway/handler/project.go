package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"siteforge/internal/projectstore"
)

// ProjectHandler serves read access to persisted projects.
type ProjectHandler struct {
	Store *projectstore.Store
}

func NewProjectHandler(store *projectstore.Store) *ProjectHandler {
	return &ProjectHandler{Store: store}
}

type projectSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HandleList returns the caller's projects, newest first.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tenantID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if tenantID == "" {
		tenantID = strings.TrimSpace(r.Header.Get("X-User-Id"))
	}
	if tenantID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}
	projects, err := h.Store.ListByTenant(r.Context(), tenantID)
	if err != nil {
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}
	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectSummary{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": out})
}

// HandleGet returns one project's document and deployment history. The
// project id is the final path segment.
func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/projects/")
	id = strings.Trim(id, "/")
	if id == "" {
		http.Error(w, "project id is required", http.StatusBadRequest)
		return
	}
	doc, err := h.Store.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, "load failed", http.StatusInternalServerError)
		return
	}
	deployments, err := h.Store.Deployments(r.Context(), id)
	if err != nil {
		deployments = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"document":    doc,
		"deployments": deployments,
	})
}
