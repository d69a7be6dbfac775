package graph

import (
	"context"
	"strings"

	"siteforge/internal/llm"
	"siteforge/internal/util/jsonutil"
)

// Intent is the classified purpose of a conversation-phase user message.
type Intent string

const (
	IntentChat        Intent = "chat"
	IntentProposePlan Intent = "propose_plan"
	IntentConfirm     Intent = "confirm_build"
	IntentDeploy      Intent = "deploy"
)

type intentResult struct {
	Intent      Intent `json:"intent"`
	Message     string `json:"message"`
	PlanOutline string `json:"plan_outline"`
}

// classifyIntent runs the conversation-phase generation call and parses its
// structured result.
func classifyIntent(ctx context.Context, cli llm.Client, st *State) (intentResult, error) {
	history := st.History
	if n := len(history); n > 12 {
		history = history[n-12:]
	}
	input := map[string]any{
		"outline": st.Outline,
		"history": history,
	}
	raw, err := cli.GenerateJSON(llm.WithRole(ctx, "intent"), promptIntent, input)
	if err != nil {
		return intentResult{}, err
	}
	var res intentResult
	if err := jsonutil.ExtractRaw(raw, &res); err != nil {
		return intentResult{}, err
	}
	switch res.Intent {
	case IntentChat, IntentProposePlan, IntentConfirm, IntentDeploy:
	default:
		res.Intent = IntentChat
	}
	return res, nil
}

// looksLikeDeployRequest is the cheap routing check used at the terminal
// phase: once a document exists, anything that is not a deploy/publish
// request is treated as an incremental edit.
func looksLikeDeployRequest(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "deploy") || strings.Contains(lower, "publish")
}
