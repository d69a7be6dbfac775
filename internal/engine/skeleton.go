package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"siteforge/internal/blueprint"
)

// SkeletonInput is the minimal material needed to scaffold a document.
type SkeletonInput struct {
	BrandingName string
	Primary      string
	Accent       string
	Paths        []string
}

// GenerateSkeleton produces a complete, schema-valid document with stable
// component ids and populated default props for every page. Component ids
// are deterministic: snake_cased type plus a two-digit counter scoped per
// type per page (hero_01, product_preview_02).
func GenerateSkeleton(in SkeletonInput) *blueprint.Document {
	doc := &blueprint.Document{
		ProjectID: uuid.NewString(),
		Branding: blueprint.Branding{
			Name:   in.BrandingName,
			Colors: blueprint.Colors{Primary: in.Primary, Accent: in.Accent},
			Style: blueprint.Style{
				BorderRadius: blueprint.DefaultBorderRadius,
				Typography:   blueprint.DefaultTypography,
			},
		},
	}

	for _, path := range in.Paths {
		types := componentsForPath(path)
		counters := make(map[string]int, len(types))
		content := make([]blueprint.Component, 0, len(types))
		for _, t := range types {
			counters[t]++
			content = append(content, blueprint.Component{
				ID:    fmt.Sprintf("%s_%02d", snakeCase(t), counters[t]),
				Type:  t,
				Props: blueprint.DefaultProps(t),
			})
		}
		doc.Pages = append(doc.Pages, blueprint.Page{
			Path: path,
			SEO: blueprint.SEO{
				Title:       fmt.Sprintf("%s | %s", pageLabel(path), in.BrandingName),
				Description: "Placeholder description.",
			},
			PuckData: blueprint.PuckData{
				Root:    blueprint.Root{},
				Content: content,
			},
		})
	}
	return doc
}

// PopulateSkeleton fills a model-produced scaffold whose pages arrived with
// empty content arrays, using the same deterministic per-path component
// selection and id scheme as GenerateSkeleton. Pages that already carry
// content are left alone. Missing branding defaults and the projectId are
// filled in as well.
func PopulateSkeleton(doc *blueprint.Document) *blueprint.Document {
	if doc.ProjectID == "" {
		doc.ProjectID = uuid.NewString()
	}
	if doc.Branding.Colors.Primary == "" {
		doc.Branding.Colors.Primary = blueprint.DefaultPrimary
	}
	if doc.Branding.Colors.Accent == "" {
		doc.Branding.Colors.Accent = blueprint.DefaultAccent
	}
	if doc.Branding.Style.BorderRadius == "" {
		doc.Branding.Style.BorderRadius = blueprint.DefaultBorderRadius
	}
	if doc.Branding.Style.Typography == "" {
		doc.Branding.Style.Typography = blueprint.DefaultTypography
	}
	for i := range doc.Pages {
		page := &doc.Pages[i]
		if len(page.PuckData.Content) > 0 {
			continue
		}
		types := componentsForPath(page.Path)
		counters := make(map[string]int, len(types))
		content := make([]blueprint.Component, 0, len(types))
		for _, t := range types {
			counters[t]++
			content = append(content, blueprint.Component{
				ID:    fmt.Sprintf("%s_%02d", snakeCase(t), counters[t]),
				Type:  t,
				Props: blueprint.DefaultProps(t),
			})
		}
		page.PuckData.Content = content
	}
	return doc
}

// componentsForPath is the fixed path-keyed selection table: the root path
// gets the broadest conversion-oriented set, known path keywords get themed
// sets, everything else a generic informational set.
func componentsForPath(path string) []string {
	switch {
	case path == "/":
		return []string{
			"Hero", "Logos", "Stats", "ValuePropositions", "FeatureHighlight",
			"ProductPreview", "Testimonials", "FAQ", "CTASection",
		}
	case strings.Contains(path, "about"):
		return []string{"FeatureHighlight", "ValuePropositions", "Testimonials", "CTASection"}
	case strings.Contains(path, "pricing"):
		return []string{"ProductPreview", "ValuePropositions", "FAQ", "CTASection"}
	case strings.Contains(path, "contact"):
		return []string{"FeatureHighlight", "FAQ", "CTASection"}
	case strings.Contains(path, "blog"), strings.Contains(path, "news"):
		return []string{"ProductPreview", "CTASection"}
	case strings.Contains(path, "career"), strings.Contains(path, "job"):
		return []string{"ValuePropositions", "ProductPreview", "CTASection"}
	case strings.Contains(path, "team"):
		return []string{"ProductPreview", "FeatureHighlight", "CTASection"}
	case strings.Contains(path, "service"), strings.Contains(path, "product"):
		return []string{"ProductPreview", "FeatureHighlight", "FAQ", "CTASection"}
	default:
		return []string{"FeatureHighlight", "ValuePropositions", "CTASection"}
	}
}

// snakeCase converts a canonical type name to its id base: ProductPreview ->
// product_preview, CTASection -> cta_section, FAQ -> faq.
func snakeCase(t string) string {
	runes := []rune(t)
	var b strings.Builder
	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if isUpper {
			r = r - 'A' + 'a'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pageLabel(path string) string {
	if path == "/" {
		return "Home"
	}
	return strings.TrimPrefix(path, "/")
}
