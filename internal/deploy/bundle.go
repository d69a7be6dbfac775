package deploy

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"html"
	"strings"

	"siteforge/internal/blueprint"
	"siteforge/internal/util/jsonutil"
)

// FileEntry is one content-addressed file of a deployment bundle. Payloads
// travel base64-encoded because the upload endpoint takes JSON.
type FileEntry struct {
	Path          string
	Hash          string
	ContentType   string
	Base64Content string
}

// Bundle is a ready-to-upload static site: a path to hash manifest plus the
// file entries the hashes refer to.
type Bundle struct {
	Manifest map[string]string
	Files    []FileEntry
}

// CreateBundle renders the document into static files: one index.html per
// page plus the raw document as project.json so a redeploy can recover it.
func CreateBundle(doc *blueprint.Document) (*Bundle, error) {
	b := &Bundle{Manifest: make(map[string]string)}

	for _, page := range doc.Pages {
		htmlPath := "/index.html"
		if page.Path != "/" {
			htmlPath = "/" + strings.Trim(page.Path, "/") + "/index.html"
		}
		b.add(htmlPath, "text/html", []byte(renderPage(doc, page)))
	}

	raw, err := jsonutil.MarshalNoEscape(doc)
	if err != nil {
		return nil, fmt.Errorf("bundle: marshal document: %w", err)
	}
	b.add("/project.json", "application/json", raw)
	return b, nil
}

func (b *Bundle) add(path, contentType string, content []byte) {
	h := contentHash(content)
	b.Manifest[path] = h
	b.Files = append(b.Files, FileEntry{
		Path:          path,
		Hash:          h,
		ContentType:   contentType,
		Base64Content: base64.StdEncoding.EncodeToString(content),
	})
}

// contentHash is the asset key: hex sha256 truncated to 32 characters, the
// length the Pages asset endpoints expect.
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:32]
}

// renderPage produces a self-contained static HTML page: brand styling in a
// head style block, one section per component with its text props escaped,
// and the JSON-LD script when the seo phase injected one.
func renderPage(doc *blueprint.Document, page blueprint.Page) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", html.EscapeString(page.SEO.Title))
	fmt.Fprintf(&sb, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(page.SEO.Description))
	if schema, ok := page.PuckData.Root.Props["seoSchema"].(string); ok && schema != "" {
		fmt.Fprintf(&sb, "<script type=\"application/ld+json\">%s</script>\n", schema)
	}
	fmt.Fprintf(&sb, "<style>:root{--primary:%s;--accent:%s}body{font-family:%s,sans-serif;margin:0;color:#111}section{padding:4rem 1.5rem;max-width:960px;margin:0 auto}h1,h2{color:var(--primary)}a.cta{background:var(--accent);color:#fff;padding:.75rem 1.5rem;border-radius:.5rem;text-decoration:none;display:inline-block}</style>\n",
		html.EscapeString(doc.Branding.Colors.Primary),
		html.EscapeString(doc.Branding.Colors.Accent),
		html.EscapeString(doc.Branding.Style.Typography))
	sb.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&sb, "<header><section><strong>%s</strong></section></header>\n", html.EscapeString(doc.Branding.Name))
	for _, comp := range page.PuckData.Content {
		renderComponent(&sb, comp)
	}
	fmt.Fprintf(&sb, "<footer><section><small>&copy; %s</small></section></footer>\n", html.EscapeString(doc.Branding.Name))
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

func renderComponent(sb *strings.Builder, comp blueprint.Component) {
	fmt.Fprintf(sb, "<section id=\"%s\" data-type=\"%s\">\n", html.EscapeString(comp.ID), html.EscapeString(comp.Type))
	heading := "h2"
	if comp.Type == "Hero" {
		heading = "h1"
	}
	if title := stringProp(comp.Props, "title"); title != "" {
		fmt.Fprintf(sb, "<%s>%s</%s>\n", heading, html.EscapeString(title), heading)
	}
	if sub := stringProp(comp.Props, "subtitle"); sub != "" {
		fmt.Fprintf(sb, "<p>%s</p>\n", html.EscapeString(sub))
	}
	if desc := stringProp(comp.Props, "description"); desc != "" {
		fmt.Fprintf(sb, "<p>%s</p>\n", html.EscapeString(desc))
	}
	if img := stringProp(comp.Props, "image"); img != "" {
		fmt.Fprintf(sb, "<img src=\"%s\" alt=\"\" loading=\"lazy\">\n", html.EscapeString(img))
	}
	if items, ok := comp.Props["items"].([]any); ok && len(items) > 0 {
		sb.WriteString("<ul>\n")
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			var parts []string
			for _, key := range []string{"label", "value", "title", "question", "answer", "quote", "author", "name", "description"} {
				if s := stringProp(m, key); s != "" {
					parts = append(parts, html.EscapeString(s))
				}
			}
			fmt.Fprintf(sb, "<li>%s</li>\n", strings.Join(parts, " - "))
		}
		sb.WriteString("</ul>\n")
	}
	if cta := stringProp(comp.Props, "ctaText"); cta != "" {
		link := stringProp(comp.Props, "ctaLink")
		if link == "" {
			link = "#"
		}
		fmt.Fprintf(sb, "<a class=\"cta\" href=\"%s\">%s</a>\n", html.EscapeString(link), html.EscapeString(cta))
	}
	sb.WriteString("</section>\n")
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}
