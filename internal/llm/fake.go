package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// FakeClient returns scripted JSON payloads per generation role, for offline
// use and tests. Responses for a role are consumed in order; the last one
// repeats. A role with no script yields an error, so tests notice calls they
// did not intend to make.
type FakeClient struct {
	mu      sync.Mutex
	scripts map[string][]json.RawMessage
	cursor  map[string]int
	errs    map[string]error

	// Calls records the roles invoked, in order.
	Calls []string
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		scripts: make(map[string][]json.RawMessage),
		cursor:  make(map[string]int),
		errs:    make(map[string]error),
	}
}

// NewOfflineClient is the no-credentials fallback: it scripts just enough
// of the conversation flow to drive a full offline build. Roles it leaves
// unscripted (architect, copywriter, stylist, seo) error out, which the
// orchestrator absorbs via its deterministic fallbacks.
func NewOfflineClient() *FakeClient {
	f := NewFakeClient()
	f.Script("intent",
		`{"intent":"propose_plan","message":"Offline mode: here is a plan for a simple marketing site. Confirm to build it.","plan_outline":"Landing page, about page, and contact page for a small business."}`,
		`{"intent":"confirm_build","message":"Building now."}`,
	)
	return f
}

// Script appends a response for role.
func (f *FakeClient) Script(role string, responses ...string) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range responses {
		f.scripts[role] = append(f.scripts[role], json.RawMessage(r))
	}
	return f
}

// Fail makes every call for role return err.
func (f *FakeClient) Fail(role string, err error) *FakeClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[role] = err
	return f
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	role := RoleFrom(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, role)
	if err, ok := f.errs[role]; ok {
		return nil, err
	}
	script := f.scripts[role]
	if len(script) == 0 {
		return nil, fmt.Errorf("llm: no scripted response for role %q", role)
	}
	i := f.cursor[role]
	if i >= len(script) {
		i = len(script) - 1
	}
	f.cursor[role] = i + 1
	return script[i], nil
}
