package engine

import (
	"log"

	"siteforge/internal/blueprint"
	"siteforge/internal/util/jsonutil"
)

// InjectOrganizationJSONLD writes a schema.org Organization descriptor into
// every page's root props under seoSchema, as a JSON string the renderer
// embeds verbatim. Pure post-processing: content and ordering are untouched.
func InjectOrganizationJSONLD(doc *blueprint.Document) *blueprint.Document {
	jsonLD := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     doc.Branding.Name,
	}
	if doc.Branding.Logo != "" {
		jsonLD["logo"] = doc.Branding.Logo
	}
	encoded, err := jsonutil.MarshalNoEscape(jsonLD)
	if err != nil {
		log.Printf("[engine] json-ld encode failed: %v", err)
		return doc
	}

	out := *doc
	out.Pages = make([]blueprint.Page, len(doc.Pages))
	for i, page := range doc.Pages {
		p := page
		props := make(map[string]any, len(page.PuckData.Root.Props)+1)
		for k, v := range page.PuckData.Root.Props {
			props[k] = v
		}
		props["seoSchema"] = string(encoded)
		p.PuckData.Root = blueprint.Root{Props: props}
		out.Pages[i] = p
	}
	return &out
}
