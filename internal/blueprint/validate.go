package blueprint

import (
	"fmt"
	"strings"
)

// Result is the outcome of a schema validation pass. Failures are data, not
// errors: the pipeline decides what to do with an invalid document.
type Result struct {
	Valid  bool
	Errors []string
}

// Detail joins the accumulated errors into one message.
func (r Result) Detail() string { return strings.Join(r.Errors, "\n") }

// Validate checks a document against the blueprint schema and the per-type
// component contracts. It never mutates the document.
func Validate(doc *Document) Result {
	var errs []string
	if doc == nil {
		return Result{Errors: []string{"document is nil"}}
	}
	if strings.TrimSpace(doc.ProjectID) == "" {
		errs = append(errs, "projectId is required")
	}
	errs = append(errs, validateBranding(doc.Branding)...)
	if len(doc.Pages) == 0 {
		errs = append(errs, "document has no pages")
	}
	for _, page := range doc.Pages {
		errs = append(errs, validatePage(page)...)
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func validateBranding(b Branding) []string {
	var errs []string
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, "branding.name is required")
	}
	if !ValidHexColor(b.Colors.Primary) {
		errs = append(errs, fmt.Sprintf("branding.colors.primary %q is not a 6-hex-digit color", b.Colors.Primary))
	}
	if !ValidHexColor(b.Colors.Accent) {
		errs = append(errs, fmt.Sprintf("branding.colors.accent %q is not a 6-hex-digit color", b.Colors.Accent))
	}
	if !ValidBorderRadius(b.Style.BorderRadius) {
		errs = append(errs, fmt.Sprintf("branding.style.borderRadius %q must be one of none/sm/md/lg", b.Style.BorderRadius))
	}
	if strings.TrimSpace(b.Style.Typography) == "" {
		errs = append(errs, "branding.style.typography is required")
	}
	return errs
}

func validatePage(page Page) []string {
	var errs []string
	if strings.TrimSpace(page.Path) == "" {
		errs = append(errs, "page path is required")
		return errs
	}
	if strings.TrimSpace(page.SEO.Title) == "" {
		errs = append(errs, fmt.Sprintf("page %q is missing seo.title", page.Path))
	}
	if strings.TrimSpace(page.SEO.Description) == "" {
		errs = append(errs, fmt.Sprintf("page %q is missing seo.description", page.Path))
	}
	if len(page.PuckData.Content) == 0 {
		errs = append(errs, fmt.Sprintf("page %q is empty; every page must have at least one component", page.Path))
	}
	for i, comp := range page.PuckData.Content {
		errs = append(errs, validateComponent(page.Path, i, comp)...)
	}
	return errs
}

func validateComponent(path string, idx int, comp Component) []string {
	var errs []string
	loc := fmt.Sprintf("%s[%d]", path, idx)
	if strings.TrimSpace(comp.ID) == "" {
		errs = append(errs, fmt.Sprintf("component at %s is missing an id", loc))
	}
	if !IsCanonicalType(comp.Type) {
		errs = append(errs, fmt.Sprintf("unknown component type %q at %s; valid types are: %s",
			comp.Type, loc, strings.Join(CanonicalTypes, ", ")))
		return errs
	}
	if comp.Props == nil {
		errs = append(errs, fmt.Sprintf("%s at %s has nil props", comp.Type, loc))
		return errs
	}
	if comp.Type == "Hero" {
		if s, _ := comp.Props["title"].(string); strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("Hero at %s is missing required prop \"title\"", loc))
		}
	}
	if RequiresItems(comp.Type) {
		items, ok := comp.Props["items"].([]any)
		if !ok || len(items) == 0 {
			errs = append(errs, fmt.Sprintf("%s at %s must have a non-empty \"items\" array", comp.Type, loc))
		}
	}
	return errs
}
