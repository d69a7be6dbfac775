package blueprint

import (
	"encoding/json"
	"fmt"

	"siteforge/internal/util/jsonutil"
)

// RawToCanonical turns free-form generation output into a Document. It first
// extracts JSON (direct, fenced, or syntax-repaired), then applies a fixed
// pipeline of idempotent structural repairs before decoding. ids is used for
// components and array items that arrive without one.
func RawToCanonical(text string, ids IDSource) (*Document, error) {
	obj, err := jsonutil.ExtractObject(text)
	if err != nil {
		return nil, err
	}
	repaired := RepairObject(obj, ids)

	buf, err := json.Marshal(repaired)
	if err != nil {
		return nil, fmt.Errorf("re-encode repaired document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(buf, &doc); err != nil {
		return nil, fmt.Errorf("decode repaired document: %w", err)
	}
	return &doc, nil
}

// RepairObject applies the structural auto-repairs in order. Each step is a
// pure function on the parsed object and a no-op when the shape is already
// canonical, so running the pipeline twice changes nothing.
func RepairObject(obj map[string]any, ids IDSource) map[string]any {
	obj = unwrapSiteConfig(obj)
	obj = renameSecondaryColor(obj)
	obj = hoistPageFields(obj)
	obj = normalizeComponents(obj, ids)
	return obj
}

// unwrapSiteConfig hoists a top-level site_config wrapper into branding and
// projectId. The wrapper itself is left in place in case later shapes refer
// to it.
func unwrapSiteConfig(obj map[string]any) map[string]any {
	sc, ok := obj["site_config"].(map[string]any)
	if !ok {
		return obj
	}
	if branding, ok := sc["branding"].(map[string]any); ok {
		merged, _ := obj["branding"].(map[string]any)
		if merged == nil {
			merged = map[string]any{}
		}
		for k, v := range branding {
			merged[k] = v
		}
		obj["branding"] = merged
	}
	if pid, ok := sc["projectId"]; ok {
		obj["projectId"] = pid
	}
	return obj
}

// renameSecondaryColor maps colors.secondary to colors.accent when accent is
// absent.
func renameSecondaryColor(obj map[string]any) map[string]any {
	branding, _ := obj["branding"].(map[string]any)
	colors, _ := branding["colors"].(map[string]any)
	if colors == nil {
		return obj
	}
	if sec, ok := colors["secondary"]; ok {
		if _, hasAccent := colors["accent"]; !hasAccent {
			colors["accent"] = sec
		}
	}
	return obj
}

// hoistPageFields moves page-level title/description/content into their
// canonical nested homes when the nested forms are missing.
func hoistPageFields(obj map[string]any) map[string]any {
	pages, _ := obj["pages"].([]any)
	for _, p := range pages {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		seo, _ := page["seo"].(map[string]any)
		if title, ok := page["title"]; ok && seo["title"] == nil {
			if seo == nil {
				seo = map[string]any{}
			}
			seo["title"] = title
			page["seo"] = seo
		}
		seo, _ = page["seo"].(map[string]any)
		if desc, ok := page["description"]; ok && seo["description"] == nil {
			if seo == nil {
				seo = map[string]any{}
			}
			seo["description"] = desc
			page["seo"] = seo
		}
		puck, _ := page["puckData"].(map[string]any)
		if content, ok := page["content"]; ok && puck["content"] == nil {
			if puck == nil {
				puck = map[string]any{}
			}
			puck["content"] = content
			page["puckData"] = puck
		}
	}
	return obj
}

// normalizeComponents walks every page's content: canonicalize the type,
// assign an id when missing (preferring one left in props), ensure props is
// a non-nil object, and give id-less object elements of array props one.
func normalizeComponents(obj map[string]any, ids IDSource) map[string]any {
	pages, _ := obj["pages"].([]any)
	for _, p := range pages {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		puck, _ := page["puckData"].(map[string]any)
		content, _ := puck["content"].([]any)
		for _, c := range content {
			comp, ok := c.(map[string]any)
			if !ok {
				continue
			}
			if t, ok := comp["type"].(string); ok {
				comp["type"] = NormalizeComponentType(t)
			}
			props, _ := comp["props"].(map[string]any)
			if props == nil {
				props = map[string]any{}
				comp["props"] = props
			}
			if id, _ := comp["id"].(string); id == "" {
				if propID, _ := props["id"].(string); propID != "" {
					comp["id"] = propID
				} else {
					comp["id"] = nextID(ids)
				}
			}
			for key, v := range props {
				arr, ok := v.([]any)
				if !ok {
					continue
				}
				for idx, item := range arr {
					m, ok := item.(map[string]any)
					if !ok {
						continue
					}
					if _, ok := m["id"]; !ok {
						m["id"] = fmt.Sprintf("item-%d-%s", idx, nextID(ids))
					}
				}
				props[key] = arr
			}
		}
	}
	return obj
}

func nextID(ids IDSource) string {
	if ids == nil {
		ids = NewRandomIDSource()
	}
	return ids.NextID()
}
