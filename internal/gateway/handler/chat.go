package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"siteforge/internal/blueprint"
	"siteforge/internal/gateway/session"
	"siteforge/internal/graph"
)

// ChatHandler serves the conversational endpoint: one POST per user turn,
// or a websocket for clients that want turn-by-turn streaming.
type ChatHandler struct {
	Engine   *graph.Engine
	Sessions *session.Store
}

func NewChatHandler(engine *graph.Engine, sessions *session.Store) *ChatHandler {
	return &ChatHandler{Engine: engine, Sessions: sessions}
}

type chatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID   string              `json:"sessionId"`
	Phase       string              `json:"phase"`
	Message     graph.Message       `json:"message"`
	Document    *blueprint.Document `json:"document,omitempty"`
	DeployedURL string              `json:"deployedUrl,omitempty"`
	Keywords    []string            `json:"keywords,omitempty"`
}

// HandleChat processes one turn synchronously.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	sess, _ := h.Sessions.Get(req.SessionID, strings.TrimSpace(req.UserID))
	sess.Lock()
	defer sess.Unlock()

	reply, err := h.Engine.HandleMessage(r.Context(), sess.State, req.Message)
	if err != nil {
		log.Printf("[gateway] chat turn failed (session %s): %v", sess.ID, err)
		http.Error(w, "generation failed, please retry", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:   sess.ID,
		Phase:       string(sess.State.Phase),
		Message:     reply,
		Document:    sess.State.Doc,
		DeployedURL: sess.State.DeployedURL,
		Keywords:    sess.State.Keywords,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[gateway] response encode failed: %v", err)
	}
}
