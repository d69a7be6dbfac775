package engine

import (
	"testing"

	"siteforge/internal/blueprint"
)

func TestLintFillsBrandingDefaults(t *testing.T) {
	doc := &blueprint.Document{
		ProjectID: "p",
		Branding: blueprint.Branding{
			Name:   "Acme",
			Colors: blueprint.Colors{Primary: "blue", Accent: ""},
			Style:  blueprint.Style{BorderRadius: "huge", Typography: " "},
		},
		Pages: []blueprint.Page{{
			Path: "/",
			SEO:  blueprint.SEO{Title: "t", Description: "d"},
			PuckData: blueprint.PuckData{Content: []blueprint.Component{
				{ID: "hero_01", Type: "Hero", Props: map[string]any{"title": "Hi"}},
			}},
		}},
	}
	out, res := Lint(doc, blueprint.NewSequenceIDSource("c"))
	if !res.Valid {
		t.Fatalf("linted document invalid:\n%s", res.Detail())
	}
	if out.Branding.Colors.Primary != blueprint.DefaultPrimary {
		t.Fatalf("primary = %q", out.Branding.Colors.Primary)
	}
	if out.Branding.Colors.Accent != blueprint.DefaultAccent {
		t.Fatalf("accent = %q", out.Branding.Colors.Accent)
	}
	if out.Branding.Style.BorderRadius != blueprint.DefaultBorderRadius {
		t.Fatalf("borderRadius = %q", out.Branding.Style.BorderRadius)
	}
	if out.Branding.Style.Typography != blueprint.DefaultTypography {
		t.Fatalf("typography = %q", out.Branding.Style.Typography)
	}
}

func TestLintFillsPageSEO(t *testing.T) {
	doc := &blueprint.Document{
		ProjectID: "p",
		Branding: blueprint.Branding{
			Name:   "Acme",
			Colors: blueprint.Colors{Primary: "#000000", Accent: "#FFFFFF"},
			Style:  blueprint.Style{BorderRadius: "sm", Typography: "Inter"},
		},
		Pages: []blueprint.Page{{
			Path: "/about",
			PuckData: blueprint.PuckData{Content: []blueprint.Component{
				{ID: "x", Type: "Hero", Props: map[string]any{"title": "Hi"}},
			}},
		}},
	}
	out, _ := Lint(doc, nil)
	if out.Pages[0].SEO.Title != "about | Acme" {
		t.Fatalf("seo.title = %q", out.Pages[0].SEO.Title)
	}
	if out.Pages[0].SEO.Description == "" {
		t.Fatal("seo.description not filled")
	}
	if out.Pages[0].PuckData.Root.Props == nil {
		t.Fatal("root props left nil")
	}
}

func TestLintMapsLegacyPropAliases(t *testing.T) {
	doc := &blueprint.Document{
		ProjectID: "p",
		Branding: blueprint.Branding{
			Name:   "Acme",
			Colors: blueprint.Colors{Primary: "#000000", Accent: "#FFFFFF"},
			Style:  blueprint.Style{BorderRadius: "sm", Typography: "Inter"},
		},
		Pages: []blueprint.Page{{
			Path: "/",
			SEO:  blueprint.SEO{Title: "t", Description: "d"},
			PuckData: blueprint.PuckData{Content: []blueprint.Component{
				{ID: "cta", Type: "cta_section", Props: map[string]any{
					"cta_text": "Go", "cta_link": "/signup", "ctaLink": "/keep",
				}},
			}},
		}},
	}
	out, _ := Lint(doc, nil)
	comp := out.Pages[0].PuckData.Content[0]
	if comp.Type != "CTASection" {
		t.Fatalf("type = %q", comp.Type)
	}
	if comp.Props["ctaText"] != "Go" {
		t.Fatalf("cta_text not mapped: %v", comp.Props["ctaText"])
	}
	if comp.Props["ctaLink"] != "/keep" {
		t.Fatalf("existing canonical prop overwritten: %v", comp.Props["ctaLink"])
	}
	if _, ok := comp.Props["cta_text"]; ok {
		t.Fatal("legacy key not removed")
	}
}

func TestLintInjectsPlaceholderItems(t *testing.T) {
	doc := &blueprint.Document{
		ProjectID: "p",
		Branding: blueprint.Branding{
			Name:   "Acme",
			Colors: blueprint.Colors{Primary: "#000000", Accent: "#FFFFFF"},
			Style:  blueprint.Style{BorderRadius: "sm", Typography: "Inter"},
		},
		Pages: []blueprint.Page{{
			Path: "/",
			SEO:  blueprint.SEO{Title: "t", Description: "d"},
			PuckData: blueprint.PuckData{Content: []blueprint.Component{
				{ID: "faq_01", Type: "FAQ", Props: map[string]any{}},
			}},
		}},
	}
	out, res := Lint(doc, nil)
	items, _ := out.Pages[0].PuckData.Content[0].Props["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("placeholder items = %v", items)
	}
	if !res.Valid {
		t.Fatalf("still invalid after lint:\n%s", res.Detail())
	}
}

func TestLintAssignsMissingComponentIDs(t *testing.T) {
	doc := &blueprint.Document{
		ProjectID: "p",
		Branding: blueprint.Branding{
			Name:   "Acme",
			Colors: blueprint.Colors{Primary: "#000000", Accent: "#FFFFFF"},
			Style:  blueprint.Style{BorderRadius: "sm", Typography: "Inter"},
		},
		Pages: []blueprint.Page{{
			Path: "/",
			SEO:  blueprint.SEO{Title: "t", Description: "d"},
			PuckData: blueprint.PuckData{Content: []blueprint.Component{
				{Type: "Hero", Props: map[string]any{"title": "Hi"}},
			}},
		}},
	}
	out, _ := Lint(doc, blueprint.NewSequenceIDSource("fix"))
	if out.Pages[0].PuckData.Content[0].ID != "fix_01" {
		t.Fatalf("id = %q", out.Pages[0].PuckData.Content[0].ID)
	}
}

func TestLintIdempotent(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{BrandingName: "Acme", Primary: "#000000", Accent: "#FFFFFF", Paths: []string{"/"}})
	once, _ := Lint(doc, nil)
	twice, _ := Lint(once, nil)
	if once.Branding != twice.Branding {
		t.Fatalf("branding drifted: %+v vs %+v", once.Branding, twice.Branding)
	}
	for i := range once.Pages[0].PuckData.Content {
		if once.Pages[0].PuckData.Content[i].ID != twice.Pages[0].PuckData.Content[i].ID {
			t.Fatal("ids drifted on second lint")
		}
	}
}
