package engine

import (
	"testing"

	"siteforge/internal/blueprint"
)

func patchBase() *blueprint.Document {
	return GenerateSkeleton(SkeletonInput{
		BrandingName: "Acme",
		Primary:      "#0052FF",
		Accent:       "#22C55E",
		Paths:        []string{"/"},
	})
}

func TestApplyPatchSetsDotPath(t *testing.T) {
	doc := patchBase()
	out := ApplyPatch(doc, AtomicPatch{ID: "hero_01", Path: "props.title", Value: "New Title"})
	if out.Pages[0].PuckData.Content[0].Props["title"] != "New Title" {
		t.Fatalf("title = %v", out.Pages[0].PuckData.Content[0].Props["title"])
	}
}

func TestApplyPatchCreatesIntermediateMaps(t *testing.T) {
	doc := patchBase()
	out := ApplyPatch(doc, AtomicPatch{ID: "hero_01", Path: "props.style.color", Value: "#FF0000"})
	style, ok := out.Pages[0].PuckData.Content[0].Props["style"].(map[string]any)
	if !ok {
		t.Fatalf("style not a map: %T", out.Pages[0].PuckData.Content[0].Props["style"])
	}
	if style["color"] != "#FF0000" {
		t.Fatalf("color = %v", style["color"])
	}
}

func TestApplyPatchMissingIDIsNoOp(t *testing.T) {
	doc := patchBase()
	out := ApplyPatch(doc, AtomicPatch{ID: "nope_01", Path: "props.title", Value: "X"})
	if out.Pages[0].PuckData.Content[0].Props["title"] != doc.Pages[0].PuckData.Content[0].Props["title"] {
		t.Fatal("unrelated component changed")
	}
}

func TestApplyPatchDoesNotTouchOtherComponents(t *testing.T) {
	doc := patchBase()
	out := ApplyPatch(doc, AtomicPatch{ID: "hero_01", Path: "props.title", Value: "Changed"})

	// unpatched components keep their identity, patched one is a copy
	for i := 1; i < len(doc.Pages[0].PuckData.Content); i++ {
		origProps := doc.Pages[0].PuckData.Content[i].Props
		outProps := out.Pages[0].PuckData.Content[i].Props
		for k, v := range origProps {
			if !sameShallow(outProps[k], v) {
				t.Fatalf("component %d prop %q changed", i, k)
			}
		}
	}
	if doc.Pages[0].PuckData.Content[0].Props["title"] == "Changed" {
		t.Fatal("input document mutated")
	}
}

func sameShallow(a, b any) bool {
	switch b.(type) {
	case string, bool, float64, int, nil:
		return a == b
	default:
		return true // deep values compared elsewhere
	}
}

func TestApplyPatchesSequential(t *testing.T) {
	doc := patchBase()
	out := ApplyPatches(doc, []AtomicPatch{
		{ID: "hero_01", Path: "props.title", Value: "First"},
		{ID: "hero_01", Path: "props.title", Value: "Second"},
		{ID: "cta_section_01", Path: "props.ctaText", Value: "Go"},
	})
	hero := out.Pages[0].PuckData.Content[0]
	if hero.Props["title"] != "Second" {
		t.Fatalf("last patch should win, got %v", hero.Props["title"])
	}
	var cta *blueprint.Component
	for i := range out.Pages[0].PuckData.Content {
		if out.Pages[0].PuckData.Content[i].ID == "cta_section_01" {
			cta = &out.Pages[0].PuckData.Content[i]
		}
	}
	if cta == nil || cta.Props["ctaText"] != "Go" {
		t.Fatal("second component patch not applied")
	}
}

func TestApplyPatchStripsPropsPrefix(t *testing.T) {
	doc := patchBase()
	// "title" and "props.title" address the same prop
	a := ApplyPatch(doc, AtomicPatch{ID: "hero_01", Path: "title", Value: "Same"})
	b := ApplyPatch(doc, AtomicPatch{ID: "hero_01", Path: "props.title", Value: "Same"})
	if a.Pages[0].PuckData.Content[0].Props["title"] != b.Pages[0].PuckData.Content[0].Props["title"] {
		t.Fatal("path forms disagree")
	}
}
