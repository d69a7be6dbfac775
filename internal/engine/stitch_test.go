package engine

import (
	"testing"

	"siteforge/internal/blueprint"
)

func stitchBase() *blueprint.Document {
	return GenerateSkeleton(SkeletonInput{
		BrandingName: "Acme",
		Primary:      "#0052FF",
		Accent:       "#22C55E",
		Paths:        []string{"/", "/about"},
	})
}

func TestStitchAppliesPatchesByID(t *testing.T) {
	base := stitchBase()
	copyTrack := TrackResult{Payload: map[string]map[string]any{
		"hero_01": {"title": "Written Title", "subtitle": "Written subtitle"},
	}}
	out := Stitch(base, []TrackResult{copyTrack})

	hero := out.Pages[0].PuckData.Content[0]
	if hero.Props["title"] != "Written Title" {
		t.Fatalf("title = %v", hero.Props["title"])
	}
	if hero.Props["subtitle"] != "Written subtitle" {
		t.Fatalf("subtitle = %v", hero.Props["subtitle"])
	}
}

func TestStitchLaterTrackWinsConflicts(t *testing.T) {
	base := stitchBase()
	first := TrackResult{Payload: map[string]map[string]any{"hero_01": {"title": "First", "theme": "light"}}}
	second := TrackResult{Payload: map[string]map[string]any{"hero_01": {"title": "Second"}}}
	out := Stitch(base, []TrackResult{first, second})

	hero := out.Pages[0].PuckData.Content[0]
	if hero.Props["title"] != "Second" {
		t.Fatalf("conflict winner = %v, want Second", hero.Props["title"])
	}
	if hero.Props["theme"] != "light" {
		t.Fatalf("non-conflicting field lost: %v", hero.Props["theme"])
	}
}

func TestStitchPreservesStructure(t *testing.T) {
	base := stitchBase()
	// payload referencing an unknown id must change nothing
	out := Stitch(base, []TrackResult{
		{Payload: map[string]map[string]any{"ghost_99": {"title": "X"}}},
	})
	if len(out.Pages) != len(base.Pages) {
		t.Fatalf("page count changed: %d", len(out.Pages))
	}
	for i := range base.Pages {
		if out.Pages[i].Path != base.Pages[i].Path {
			t.Fatalf("page %d path changed", i)
		}
		if len(out.Pages[i].PuckData.Content) != len(base.Pages[i].PuckData.Content) {
			t.Fatalf("page %d component count changed", i)
		}
		for j := range base.Pages[i].PuckData.Content {
			if out.Pages[i].PuckData.Content[j].ID != base.Pages[i].PuckData.Content[j].ID {
				t.Fatalf("component order changed at %d/%d", i, j)
			}
		}
	}
}

func TestStitchDoesNotMutateBase(t *testing.T) {
	base := stitchBase()
	before := base.Pages[0].PuckData.Content[0].Props["title"]
	_ = Stitch(base, []TrackResult{
		{Payload: map[string]map[string]any{"hero_01": {"title": "Changed"}}},
	})
	if base.Pages[0].PuckData.Content[0].Props["title"] != before {
		t.Fatal("stitch mutated the base document")
	}
}
