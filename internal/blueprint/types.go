package blueprint

import "regexp"

// Document is the root blueprint artifact: branding plus an ordered set of
// pages, each carrying a component tree. ProjectID is assigned once at
// skeleton creation and never changed afterwards.
type Document struct {
	ProjectID string   `json:"projectId"`
	Branding  Branding `json:"branding"`
	Pages     []Page   `json:"pages"`
}

type Branding struct {
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
	Colors Colors `json:"colors"`
	Style  Style  `json:"style"`
}

type Colors struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
}

type Style struct {
	BorderRadius string `json:"borderRadius"`
	Typography   string `json:"typography"`
}

// Page is keyed by its route path, unique within a document by construction.
type Page struct {
	Path     string   `json:"path"`
	SEO      SEO      `json:"seo"`
	PuckData PuckData `json:"puckData"`
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PuckData struct {
	Root    Root        `json:"root"`
	Content []Component `json:"content"`
}

type Root struct {
	Props map[string]any `json:"props,omitempty"`
}

// Component is one addressable content block. The id is the join key for
// stitching and patching; it is never reassigned once set.
type Component struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// Defaults applied by the linter when branding values are missing or invalid.
const (
	DefaultPrimary      = "#0052FF"
	DefaultAccent       = "#22C55E"
	DefaultTypography   = "Inter"
	DefaultBorderRadius = "sm"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidHexColor reports whether s is a 6-hex-digit color string.
func ValidHexColor(s string) bool { return hexColorRe.MatchString(s) }

var borderRadiusValues = map[string]struct{}{
	"none": {}, "sm": {}, "md": {}, "lg": {},
}

// ValidBorderRadius reports whether s is one of none/sm/md/lg.
func ValidBorderRadius(s string) bool {
	_, ok := borderRadiusValues[s]
	return ok
}

// Clone returns a deep copy of the component. Props and any nested maps or
// slices are copied; scalar values are shared.
func (c Component) Clone() Component {
	return Component{ID: c.ID, Type: c.Type, Props: cloneMap(c.Props)}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneMap(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = cloneValue(x[i])
		}
		return out
	default:
		return v
	}
}
