package deploy

import (
	"encoding/base64"
	"strings"
	"testing"

	"siteforge/internal/blueprint"
	"siteforge/internal/engine"
)

func bundleDoc() *blueprint.Document {
	doc := engine.GenerateSkeleton(engine.SkeletonInput{
		BrandingName: "Acme <Bakery>",
		Primary:      "#0052FF",
		Accent:       "#22C55E",
		Paths:        []string{"/", "/about"},
	})
	return engine.InjectOrganizationJSONLD(doc)
}

func TestCreateBundleLayout(t *testing.T) {
	b, err := CreateBundle(bundleDoc())
	if err != nil {
		t.Fatalf("CreateBundle: %v", err)
	}
	for _, path := range []string{"/index.html", "/about/index.html", "/project.json"} {
		if _, ok := b.Manifest[path]; !ok {
			t.Fatalf("manifest missing %s; have %v", path, b.Manifest)
		}
	}
	if len(b.Files) != len(b.Manifest) {
		t.Fatalf("files %d != manifest entries %d", len(b.Files), len(b.Manifest))
	}
	for _, f := range b.Files {
		if len(f.Hash) != 32 {
			t.Fatalf("hash %q is not 32 chars", f.Hash)
		}
		if b.Manifest[f.Path] != f.Hash {
			t.Fatalf("manifest/file hash mismatch for %s", f.Path)
		}
	}
}

func TestCreateBundleHTMLEscapesAndEmbeds(t *testing.T) {
	b, err := CreateBundle(bundleDoc())
	if err != nil {
		t.Fatalf("CreateBundle: %v", err)
	}
	var home string
	for _, f := range b.Files {
		if f.Path == "/index.html" {
			raw, err := base64.StdEncoding.DecodeString(f.Base64Content)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			home = string(raw)
		}
	}
	if home == "" {
		t.Fatal("home page not bundled")
	}
	if strings.Contains(home, "<Bakery>") {
		t.Fatal("brand name not escaped in html")
	}
	if !strings.Contains(home, "Acme &lt;Bakery&gt;") {
		t.Fatal("escaped brand name missing")
	}
	if !strings.Contains(home, `application/ld+json`) {
		t.Fatal("json-ld script missing")
	}
	if !strings.Contains(home, `data-type="Hero"`) {
		t.Fatal("hero section missing")
	}
}

func TestCreateBundleContentAddressed(t *testing.T) {
	a, err := CreateBundle(bundleDoc())
	if err != nil {
		t.Fatalf("CreateBundle: %v", err)
	}
	// identical content on both pages would share a hash; different pages differ
	if a.Manifest["/index.html"] == a.Manifest["/about/index.html"] {
		t.Fatal("distinct pages share a hash")
	}
	if a.Manifest["/index.html"] == a.Manifest["/project.json"] {
		t.Fatal("html and json share a hash")
	}
}

func TestCreateBundleContentTypes(t *testing.T) {
	b, err := CreateBundle(bundleDoc())
	if err != nil {
		t.Fatalf("CreateBundle: %v", err)
	}
	for _, f := range b.Files {
		switch {
		case strings.HasSuffix(f.Path, ".html") && f.ContentType != "text/html":
			t.Fatalf("%s content type %q", f.Path, f.ContentType)
		case strings.HasSuffix(f.Path, ".json") && f.ContentType != "application/json":
			t.Fatalf("%s content type %q", f.Path, f.ContentType)
		}
	}
}
