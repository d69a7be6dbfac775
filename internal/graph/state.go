package graph

import (
	"context"

	"siteforge/internal/blueprint"
)

// Phase is one node of the orchestration graph.
type Phase string

const (
	PhaseConversation Phase = "conversation"
	PhaseSkeleton     Phase = "skeleton"
	PhaseParallel     Phase = "parallel"
	PhaseStitcher     Phase = "stitcher"
	PhaseLiner        Phase = "liner"
	PhaseSEO          Phase = "seo_optimization"
	PhaseLinter       Phase = "linter"
	PhasePatch        Phase = "patch"
	PhaseDeploy       Phase = "deploy"
	// PhaseEnd is terminal but re-enterable: the next user message routes
	// back through conversation, or straight to patch once a document exists.
	PhaseEnd Phase = "end"
)

// State is the per-session orchestration state. One instance exists per
// conversation; the engine owns it exclusively for the duration of a turn.
type State struct {
	Phase           Phase                `json:"phase"`
	Outline         string               `json:"outline,omitempty"`
	Doc             *blueprint.Document  `json:"doc,omitempty"`
	Keywords        []string             `json:"keywords,omitempty"`
	ValidationError string               `json:"validationError,omitempty"`
	Attempts        int                  `json:"attempts"`
	DeployedURL     string               `json:"deployedUrl,omitempty"`
	UserID          string               `json:"userId,omitempty"`
	StoreProjectID  string               `json:"storeProjectId,omitempty"`
	History         []Message            `json:"history,omitempty"`
}

// NewState returns a fresh conversation-phase state for a user.
func NewState(userID string) *State {
	return &State{Phase: PhaseConversation, UserID: userID}
}

// Message is one chat transcript entry.
type Message struct {
	Role    string   `json:"role"` // "user" or "assistant"
	Content string   `json:"content"`
	Actions []Action `json:"actions,omitempty"`
}

// Action is a suggested follow-up surfaced to the UI alongside a message.
type Action struct {
	Text    string `json:"text"`
	Payload string `json:"payload"`
	Kind    string `json:"kind"` // "button" or "url"
}

// ProjectStore persists blueprint documents and deployment records. Writes
// are best-effort from the orchestrator's perspective: failures are logged
// and never block a deployment.
type ProjectStore interface {
	UpsertProject(ctx context.Context, tenantID, name string, doc *blueprint.Document, existingID string) (string, error)
	RecordDeployment(ctx context.Context, projectID, url, environment string) error
}

// Deployer bundles and uploads a finished document, returning the public URL.
type Deployer interface {
	Deploy(ctx context.Context, doc *blueprint.Document, userID string) (string, error)
}
