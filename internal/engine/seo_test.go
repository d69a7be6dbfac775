package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInjectOrganizationJSONLD(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{BrandingName: "Müller & Co", Primary: "#000000", Accent: "#FFFFFF", Paths: []string{"/", "/about"}})
	doc.Branding.Logo = "https://example.com/logo.png?size=large&v=2"

	out := InjectOrganizationJSONLD(doc)
	for _, page := range out.Pages {
		raw, ok := page.PuckData.Root.Props["seoSchema"].(string)
		if !ok || raw == "" {
			t.Fatalf("page %q missing seoSchema", page.Path)
		}
		var ld map[string]any
		if err := json.Unmarshal([]byte(raw), &ld); err != nil {
			t.Fatalf("seoSchema is not valid JSON: %v", err)
		}
		if ld["@context"] != "https://schema.org" || ld["@type"] != "Organization" {
			t.Fatalf("unexpected json-ld: %v", ld)
		}
		if ld["name"] != "Müller & Co" {
			t.Fatalf("name = %v", ld["name"])
		}
		if strings.Contains(raw, `&`) {
			t.Fatalf("ampersand escaped in embedded json-ld: %s", raw)
		}
		if ld["logo"] != "https://example.com/logo.png?size=large&v=2" {
			t.Fatalf("logo = %v", ld["logo"])
		}
	}
}

func TestInjectOrganizationJSONLDOmitsEmptyLogo(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{BrandingName: "Acme", Primary: "#000000", Accent: "#FFFFFF", Paths: []string{"/"}})
	out := InjectOrganizationJSONLD(doc)
	raw := out.Pages[0].PuckData.Root.Props["seoSchema"].(string)
	if strings.Contains(raw, "logo") {
		t.Fatalf("logo key present without a logo: %s", raw)
	}
}

func TestInjectOrganizationJSONLDDoesNotMutateInput(t *testing.T) {
	doc := GenerateSkeleton(SkeletonInput{BrandingName: "Acme", Primary: "#000000", Accent: "#FFFFFF", Paths: []string{"/"}})
	_ = InjectOrganizationJSONLD(doc)
	if _, ok := doc.Pages[0].PuckData.Root.Props["seoSchema"]; ok {
		t.Fatal("input document mutated")
	}
}
