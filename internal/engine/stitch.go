package engine

import "siteforge/internal/blueprint"

// TrackResult is one specialist pass's output: partial prop patches keyed by
// component id. It is consumed once by Stitch and discarded.
type TrackResult struct {
	Payload map[string]map[string]any `json:"payload"`
}

// Stitch merges track payloads onto base, shallow field-by-field with later
// tracks winning on conflicts. Tracks can only fill in props by id: the
// output's page and component identity set and ordering is exactly that of
// base, so independently generated passes cannot drift the structure.
func Stitch(base *blueprint.Document, tracks []TrackResult) *blueprint.Document {
	out := *base
	out.Pages = make([]blueprint.Page, len(base.Pages))
	for i, page := range base.Pages {
		p := page
		p.PuckData.Content = make([]blueprint.Component, len(page.PuckData.Content))
		for j, comp := range page.PuckData.Content {
			p.PuckData.Content[j] = stitchComponent(comp, tracks)
		}
		out.Pages[i] = p
	}
	return &out
}

func stitchComponent(comp blueprint.Component, tracks []TrackResult) blueprint.Component {
	var patched bool
	merged := comp.Props
	for _, track := range tracks {
		patch, ok := track.Payload[comp.ID]
		if !ok {
			continue
		}
		if !patched {
			next := make(map[string]any, len(comp.Props)+len(patch))
			for k, v := range comp.Props {
				next[k] = v
			}
			merged = next
			patched = true
		}
		for k, v := range patch {
			merged[k] = v
		}
	}
	comp.Props = merged
	return comp
}
