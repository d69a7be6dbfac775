package engine

import (
	"strings"
	"testing"

	"siteforge/internal/blueprint"
)

func TestGenerateSkeletonIsValid(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{
		BrandingName: "Acme",
		Primary:      "#0052FF",
		Accent:       "#22C55E",
		Paths:        []string{"/", "/about", "/pricing", "/weird-path"},
	})
	if res := blueprint.Validate(doc); !res.Valid {
		t.Fatalf("skeleton invalid:\n%s", res.Detail())
	}
	if doc.ProjectID == "" {
		t.Fatal("projectId not assigned")
	}
	if len(doc.Pages) != 4 {
		t.Fatalf("pages = %d", len(doc.Pages))
	}
}

func TestGenerateSkeletonRootPageLeadsWithHero(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{BrandingName: "Acme", Primary: "#000000", Accent: "#FFFFFF", Paths: []string{"/"}})
	content := doc.Pages[0].PuckData.Content
	if len(content) < 5 {
		t.Fatalf("root page too sparse: %d components", len(content))
	}
	if content[0].Type != "Hero" {
		t.Fatalf("root page starts with %q", content[0].Type)
	}
}

func TestGenerateSkeletonIDFormat(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{BrandingName: "Acme", Primary: "#000000", Accent: "#FFFFFF", Paths: []string{"/"}})
	seen := map[string]bool{}
	for _, comp := range doc.Pages[0].PuckData.Content {
		if seen[comp.ID] {
			t.Fatalf("duplicate id %q", comp.ID)
		}
		seen[comp.ID] = true
		if !strings.HasSuffix(comp.ID, "_01") {
			t.Fatalf("id %q missing per-type counter suffix", comp.ID)
		}
	}
	if !seen["hero_01"] || !seen["cta_section_01"] || !seen["value_propositions_01"] {
		t.Fatalf("expected snake_case ids, got %v", seen)
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Hero":              "hero",
		"ProductPreview":    "product_preview",
		"CTASection":        "cta_section",
		"FAQ":               "faq",
		"ValuePropositions": "value_propositions",
	}
	for in, want := range cases {
		if got := snakeCase(in); got != want {
			t.Fatalf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPopulateSkeletonFillsEmptyPages(t *testing.T) {
	doc := &blueprint.Document{
		Branding: blueprint.Branding{Name: "Acme"},
		Pages: []blueprint.Page{
			{Path: "/", SEO: blueprint.SEO{Title: "Home", Description: "d"}},
			{
				Path: "/about",
				SEO:  blueprint.SEO{Title: "About", Description: "d"},
				PuckData: blueprint.PuckData{Content: []blueprint.Component{
					{ID: "keep_01", Type: "Hero", Props: map[string]any{"title": "Kept"}},
				}},
			},
		},
	}
	out := PopulateSkeleton(doc)
	if out.ProjectID == "" {
		t.Fatal("projectId not filled")
	}
	if out.Branding.Colors.Primary != blueprint.DefaultPrimary {
		t.Fatalf("primary = %q", out.Branding.Colors.Primary)
	}
	if len(out.Pages[0].PuckData.Content) == 0 {
		t.Fatal("empty page not populated")
	}
	if len(out.Pages[1].PuckData.Content) != 1 || out.Pages[1].PuckData.Content[0].ID != "keep_01" {
		t.Fatal("non-empty page was rewritten")
	}
	if res := blueprint.Validate(out); !res.Valid {
		t.Fatalf("populated skeleton invalid:\n%s", res.Detail())
	}
}
