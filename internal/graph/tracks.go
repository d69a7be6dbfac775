package graph

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"siteforge/internal/blueprint"
	"siteforge/internal/engine"
	"siteforge/internal/llm"
	"siteforge/internal/util/jsonutil"
)

// runTracks dispatches the three specialist generation calls concurrently
// and joins on an all-complete barrier. Each track's failure is isolated:
// the architect falls back to the skeleton, copy and style fall back to
// empty payloads. The returned track order is fixed to {copy, style} so
// conflict resolution never depends on completion order.
func (e *Engine) runTracks(ctx context.Context, skeleton *blueprint.Document) (*blueprint.Document, []engine.TrackResult) {
	var (
		architect  = skeleton
		copyTrack  engine.TrackResult
		styleTrack engine.TrackResult
	)

	var g errgroup.Group
	g.Go(func() error {
		doc, err := e.runArchitect(ctx, skeleton)
		if err != nil {
			log.Printf("[graph] architect track failed, keeping skeleton: %v", err)
			return nil
		}
		architect = doc
		return nil
	})
	g.Go(func() error {
		track, err := e.runPatchTrack(ctx, "copywriter", promptCopywriter, skeleton)
		if err != nil {
			log.Printf("[graph] copywriter track failed, contributing nothing: %v", err)
			return nil
		}
		copyTrack = track
		return nil
	})
	g.Go(func() error {
		track, err := e.runPatchTrack(ctx, "stylist", promptStylist, skeleton)
		if err != nil {
			log.Printf("[graph] stylist track failed, contributing nothing: %v", err)
			return nil
		}
		styleTrack = track
		return nil
	})
	_ = g.Wait() // track funcs never return errors; the barrier is the point

	return architect, []engine.TrackResult{copyTrack, styleTrack}
}

// runArchitect asks for a full structural regeneration and accepts it only
// when it preserved the skeleton's structure exactly.
func (e *Engine) runArchitect(ctx context.Context, skeleton *blueprint.Document) (*blueprint.Document, error) {
	prompt := fmt.Sprintf(promptArchitect, blueprint.PromptSnippet())
	raw, err := e.LLM.GenerateJSON(llm.WithRole(ctx, "architect"), prompt, skeleton)
	if err != nil {
		return nil, err
	}
	doc, err := blueprint.RawToCanonical(string(raw), e.IDs)
	if err != nil {
		return nil, err
	}
	if err := sameStructure(skeleton, doc); err != nil {
		return nil, fmt.Errorf("architect drifted from skeleton: %w", err)
	}
	// projectId is assigned once at skeleton time and never regenerated.
	doc.ProjectID = skeleton.ProjectID
	return doc, nil
}

func (e *Engine) runPatchTrack(ctx context.Context, role, prompt string, skeleton *blueprint.Document) (engine.TrackResult, error) {
	raw, err := e.LLM.GenerateJSON(llm.WithRole(ctx, role), prompt, skeleton)
	if err != nil {
		return engine.TrackResult{}, err
	}
	var track engine.TrackResult
	if err := jsonutil.ExtractRaw(raw, &track); err != nil {
		return engine.TrackResult{}, err
	}
	return track, nil
}

// sameStructure verifies page paths and component id sequences match between
// the skeleton and a regenerated document.
func sameStructure(base, got *blueprint.Document) error {
	if len(base.Pages) != len(got.Pages) {
		return fmt.Errorf("page count %d != %d", len(got.Pages), len(base.Pages))
	}
	for i := range base.Pages {
		bp, gp := base.Pages[i], got.Pages[i]
		if bp.Path != gp.Path {
			return fmt.Errorf("page %d path %q != %q", i, gp.Path, bp.Path)
		}
		if len(bp.PuckData.Content) != len(gp.PuckData.Content) {
			return fmt.Errorf("page %q component count %d != %d", bp.Path, len(gp.PuckData.Content), len(bp.PuckData.Content))
		}
		for j := range bp.PuckData.Content {
			if bp.PuckData.Content[j].ID != gp.PuckData.Content[j].ID {
				return fmt.Errorf("page %q component %d id %q != %q",
					bp.Path, j, gp.PuckData.Content[j].ID, bp.PuckData.Content[j].ID)
			}
		}
	}
	return nil
}
