package engine

import (
	"strings"

	"siteforge/internal/blueprint"
)

// AtomicPatch is a single dot-path-addressed mutation to one component.
type AtomicPatch struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// ApplyPatch sets patch.Path (split on ".") to patch.Value on the component
// with patch.ID, on a deep copy of only that component; every other
// component keeps its original value. When no component matches the id, the
// document is returned unchanged: patches are LLM-derived and may reference
// stale ids, so a miss is deliberately a no-op.
func ApplyPatch(doc *blueprint.Document, patch AtomicPatch) *blueprint.Document {
	out := *doc
	out.Pages = make([]blueprint.Page, len(doc.Pages))
	for i, page := range doc.Pages {
		p := page
		p.PuckData.Content = make([]blueprint.Component, len(page.PuckData.Content))
		for j, comp := range page.PuckData.Content {
			if comp.ID != patch.ID {
				p.PuckData.Content[j] = comp
				continue
			}
			next := comp.Clone()
			setComponentPath(&next, patch.Path, patch.Value)
			p.PuckData.Content[j] = next
		}
		out.Pages[i] = p
	}
	return &out
}

// ApplyPatches applies patches sequentially, each against the previous result.
func ApplyPatches(doc *blueprint.Document, patches []AtomicPatch) *blueprint.Document {
	for _, p := range patches {
		doc = ApplyPatch(doc, p)
	}
	return doc
}

// setComponentPath walks the dot path, creating intermediate objects as
// needed. The leading "props" segment addresses the props map; anything else
// is rooted there too since id and type are never patch targets.
func setComponentPath(comp *blueprint.Component, dotPath string, value any) {
	parts := splitPath(dotPath)
	if len(parts) == 0 {
		return
	}
	if parts[0] == "props" {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		if m, ok := value.(map[string]any); ok {
			comp.Props = m
		}
		return
	}
	if comp.Props == nil {
		comp.Props = map[string]any{}
	}
	cur := comp.Props
	for _, key := range parts[:len(parts)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func splitPath(p string) []string {
	raw := strings.Split(p, ".")
	out := raw[:0]
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
