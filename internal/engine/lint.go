package engine

import (
	"fmt"
	"strings"

	"siteforge/internal/blueprint"
)

// legacyPropAliases maps snake_case prop names some generations still emit
// to their canonical camelCase forms.
var legacyPropAliases = map[string]string{
	"cta_text": "ctaText",
	"cta_link": "ctaLink",
}

// Lint is the idempotent post-merge normalization pass: fill missing
// branding defaults, repair malformed colors, guarantee per-page seo and
// root props, re-normalize component types, map legacy prop aliases, and
// inject a placeholder items entry where a required array is missing. It
// then re-validates and reports the outcome as data; Lint never fails.
func Lint(doc *blueprint.Document, ids blueprint.IDSource) (*blueprint.Document, blueprint.Result) {
	out := *doc
	lintBranding(&out.Branding)

	out.Pages = make([]blueprint.Page, len(doc.Pages))
	for i, page := range doc.Pages {
		out.Pages[i] = lintPage(page, out.Branding.Name, ids)
	}

	return &out, blueprint.Validate(&out)
}

func lintBranding(b *blueprint.Branding) {
	if strings.TrimSpace(b.Style.Typography) == "" {
		b.Style.Typography = blueprint.DefaultTypography
	}
	if !blueprint.ValidBorderRadius(b.Style.BorderRadius) {
		b.Style.BorderRadius = blueprint.DefaultBorderRadius
	}
	if !blueprint.ValidHexColor(b.Colors.Primary) {
		b.Colors.Primary = blueprint.DefaultPrimary
	}
	if !blueprint.ValidHexColor(b.Colors.Accent) {
		b.Colors.Accent = blueprint.DefaultAccent
	}
}

func lintPage(page blueprint.Page, brandName string, ids blueprint.IDSource) blueprint.Page {
	if strings.TrimSpace(page.SEO.Title) == "" {
		page.SEO.Title = fmt.Sprintf("%s | %s", pageLabel(page.Path), brandName)
	}
	if strings.TrimSpace(page.SEO.Description) == "" {
		page.SEO.Description = fmt.Sprintf("Learn more about %s.", brandName)
	}
	if page.PuckData.Root.Props == nil {
		page.PuckData.Root.Props = map[string]any{}
	}

	content := make([]blueprint.Component, len(page.PuckData.Content))
	for i, comp := range page.PuckData.Content {
		content[i] = lintComponent(comp, ids)
	}
	page.PuckData.Content = content
	return page
}

func lintComponent(comp blueprint.Component, ids blueprint.IDSource) blueprint.Component {
	comp = comp.Clone()
	comp.Type = blueprint.NormalizeComponentType(comp.Type)
	if strings.TrimSpace(comp.ID) == "" {
		comp.ID = nextLintID(ids)
	}
	if comp.Props == nil {
		comp.Props = map[string]any{}
	}
	for legacy, canonical := range legacyPropAliases {
		v, ok := comp.Props[legacy]
		if !ok {
			continue
		}
		if _, exists := comp.Props[canonical]; !exists {
			comp.Props[canonical] = v
		}
		delete(comp.Props, legacy)
	}
	if blueprint.RequiresItems(comp.Type) {
		items, _ := comp.Props["items"].([]any)
		if len(items) == 0 {
			comp.Props["items"] = []any{blueprint.PlaceholderItem(comp.Type)}
		}
	}
	return comp
}

func nextLintID(ids blueprint.IDSource) string {
	if ids == nil {
		ids = blueprint.NewRandomIDSource()
	}
	return ids.NextID()
}
