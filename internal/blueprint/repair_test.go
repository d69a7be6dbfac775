package blueprint

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRawToCanonicalUnwrapsSiteConfig(t *testing.T) {
	raw := `{
  "site_config": {
    "projectId": "p-1",
    "branding": {"name": "Acme", "colors": {"primary": "#111111", "secondary": "#222222"}}
  },
  "pages": [
    {"path": "/", "title": "Home", "description": "Welcome.", "content": [
      {"type": "hero", "props": {"title": "Hi"}}
    ]}
  ]
}`
	doc, err := RawToCanonical(raw, NewSequenceIDSource("comp"))
	if err != nil {
		t.Fatalf("RawToCanonical: %v", err)
	}
	if doc.ProjectID != "p-1" {
		t.Fatalf("projectId = %q", doc.ProjectID)
	}
	if doc.Branding.Name != "Acme" {
		t.Fatalf("branding.name = %q", doc.Branding.Name)
	}
	if doc.Branding.Colors.Accent != "#222222" {
		t.Fatalf("secondary not mapped to accent: %q", doc.Branding.Colors.Accent)
	}
	page := doc.Pages[0]
	if page.SEO.Title != "Home" || page.SEO.Description != "Welcome." {
		t.Fatalf("page fields not hoisted into seo: %+v", page.SEO)
	}
	if len(page.PuckData.Content) != 1 {
		t.Fatalf("content not hoisted into puckData: %+v", page.PuckData)
	}
	comp := page.PuckData.Content[0]
	if comp.Type != "Hero" {
		t.Fatalf("type not normalized: %q", comp.Type)
	}
	if comp.ID == "" {
		t.Fatal("missing id not assigned")
	}
}

func TestRawToCanonicalKeepsAccentOverSecondary(t *testing.T) {
	raw := `{"branding": {"colors": {"accent": "#AAAAAA", "secondary": "#BBBBBB"}}, "pages": []}`
	doc, err := RawToCanonical(raw, nil)
	if err != nil {
		t.Fatalf("RawToCanonical: %v", err)
	}
	if doc.Branding.Colors.Accent != "#AAAAAA" {
		t.Fatalf("accent overwritten by secondary: %q", doc.Branding.Colors.Accent)
	}
}

func TestRawToCanonicalPrefersPropID(t *testing.T) {
	raw := `{"pages": [{"path": "/", "puckData": {"content": [
  {"type": "Hero", "props": {"id": "hero_main", "title": "Hi"}}
]}}]}`
	doc, err := RawToCanonical(raw, NewSequenceIDSource("comp"))
	if err != nil {
		t.Fatalf("RawToCanonical: %v", err)
	}
	if got := doc.Pages[0].PuckData.Content[0].ID; got != "hero_main" {
		t.Fatalf("id = %q, want hero_main", got)
	}
}

func TestRawToCanonicalAssignsArrayItemIDs(t *testing.T) {
	raw := `{"pages": [{"path": "/", "puckData": {"content": [
  {"id": "faq_01", "type": "FAQ", "props": {"items": [
    {"question": "Q1", "answer": "A1"},
    {"id": "kept", "question": "Q2", "answer": "A2"}
  ]}}
]}}]}`
	doc, err := RawToCanonical(raw, NewSequenceIDSource("x"))
	if err != nil {
		t.Fatalf("RawToCanonical: %v", err)
	}
	items := doc.Pages[0].PuckData.Content[0].Props["items"].([]any)
	first := items[0].(map[string]any)
	if id, _ := first["id"].(string); !strings.HasPrefix(id, "item-0-") {
		t.Fatalf("first item id = %v", first["id"])
	}
	second := items[1].(map[string]any)
	if second["id"] != "kept" {
		t.Fatalf("existing item id overwritten: %v", second["id"])
	}
}

func TestRawToCanonicalFencedInput(t *testing.T) {
	raw := "Here is the site:\n```json\n{\"projectId\": \"p-2\", \"pages\": []}\n```\nDone."
	doc, err := RawToCanonical(raw, nil)
	if err != nil {
		t.Fatalf("RawToCanonical: %v", err)
	}
	if doc.ProjectID != "p-2" {
		t.Fatalf("projectId = %q", doc.ProjectID)
	}
}

func TestRepairObjectIdempotent(t *testing.T) {
	raw := `{"site_config": {"branding": {"name": "A", "colors": {"secondary": "#333333"}}},
"pages": [{"path": "/", "title": "T", "content": [{"type": "cta_section", "props": {}}]}]}`
	ids := NewSequenceIDSource("c")
	docA, err := RawToCanonical(raw, ids)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	// running the repaired output back through changes nothing structurally
	buf, _ := json.Marshal(docA)
	docB, err := RawToCanonical(string(buf), ids)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if docA.Branding.Colors.Accent != docB.Branding.Colors.Accent {
		t.Fatalf("accent drifted: %q vs %q", docA.Branding.Colors.Accent, docB.Branding.Colors.Accent)
	}
	if docA.Pages[0].PuckData.Content[0].ID != docB.Pages[0].PuckData.Content[0].ID {
		t.Fatal("component id drifted on second pass")
	}
	if docB.Pages[0].PuckData.Content[0].Type != "CTASection" {
		t.Fatalf("type = %q", docB.Pages[0].PuckData.Content[0].Type)
	}
}
