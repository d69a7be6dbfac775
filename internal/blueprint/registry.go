package blueprint

import (
	"fmt"
	"sort"
	"strings"
)

// ComponentSpec describes one canonical component for validation and for the
// generation prompts: what it is, which props it takes, and a correct example.
type ComponentSpec struct {
	Description string
	PropsSchema map[string]string
	Example     string
}

// Registry holds the prop contracts for every canonical component type.
var Registry = map[string]ComponentSpec{
	"Hero": {
		Description: "The primary visual section at the top of the page.",
		PropsSchema: map[string]string{
			"title":       "string (required)",
			"description": "string (optional)",
			"subtitle":    "string (optional)",
			"ctaText":     "string (optional, e.g. 'Get Started')",
			"image":       "string (URL, optional)",
			"align":       "'text-left' | 'text-center' (default 'text-left')",
			"theme":       "'dark' | 'light' | 'glass' (default 'dark')",
			"effect":      "'none' | 'retro-grid' (default 'none')",
		},
		Example: `{"type":"Hero","props":{"title":"Revolutionize Your Logistics","description":"Seamless global shipping.","ctaText":"Start Shipping","align":"text-center","theme":"dark","effect":"retro-grid"}}`,
	},
	"Stats": {
		Description: "Display key metrics or achievements.",
		PropsSchema: map[string]string{
			"items": "array of { label: string, value: string, suffix: string }",
		},
		Example: `{"type":"Stats","props":{"items":[{"label":"Active Users","value":"50,000","suffix":"+"}]}}`,
	},
	"Testimonials": {
		Description: "Customer reviews and social proof.",
		PropsSchema: map[string]string{
			"title": "string (optional)",
			"items": "array of { content: string, author: string, role: string }",
		},
		Example: `{"type":"Testimonials","props":{"title":"What Our Clients Say","items":[{"content":"Transformed our supply chain.","author":"Jane Doe","role":"CEO"}]}}`,
	},
	"ValuePropositions": {
		Description: "Key benefits or features of the service.",
		PropsSchema: map[string]string{
			"title": "string (optional)",
			"items": "array of { title: string, description: string, icon: string (Lucide icon name) }",
		},
		Example: `{"type":"ValuePropositions","props":{"title":"Why Choose Us","items":[{"title":"Real-time Tracking","description":"Monitor cargo end to end.","icon":"MapPin"}]}}`,
	},
	"ProductPreview": {
		Description: "Showcase products or services in a grid.",
		PropsSchema: map[string]string{
			"title": "string (optional)",
			"items": "array of { title: string, description: string, image: string, link: string, price: string (optional) }",
		},
		Example: `{"type":"ProductPreview","props":{"title":"Our Solutions","items":[{"title":"Express Freight","description":"Next-day delivery.","image":"https://images.unsplash.com/photo-1586528116311","link":"/services/express"}]}}`,
	},
	"FeatureHighlight": {
		Description: "Alternating image and text sections highlighting one feature or story.",
		PropsSchema: map[string]string{
			"title":       "string",
			"description": "string",
			"image":       "string (URL)",
			"align":       "'left' | 'right' (image position, default 'left')",
			"ctaText":     "string (optional)",
			"ctaLink":     "string (optional)",
		},
		Example: `{"type":"FeatureHighlight","props":{"title":"Sustainable Practices","description":"Eco-friendly packaging and optimized routing.","image":"https://images.unsplash.com/photo-1542601906990","align":"right"}}`,
	},
	"CTASection": {
		Description: "A dedicated call-to-action section to drive conversions.",
		PropsSchema: map[string]string{
			"title":       "string",
			"description": "string (optional)",
			"ctaText":     "string",
			"ctaLink":     "string (optional)",
			"theme":       "'dark' | 'light' | 'primary' (default 'primary')",
		},
		Example: `{"type":"CTASection","props":{"title":"Ready to Get Started?","description":"Join thousands of customers.","ctaText":"Create Account","theme":"primary"}}`,
	},
	"FAQ": {
		Description: "Frequently asked questions accordion.",
		PropsSchema: map[string]string{
			"title": "string (optional)",
			"items": "array of { question: string, answer: string }",
		},
		Example: `{"type":"FAQ","props":{"title":"Common Questions","items":[{"question":"How do I track my shipment?","answer":"Use the dashboard tracking tool."}]}}`,
	},
	"Logos": {
		Description: "Grid of client or partner logos to build trust.",
		PropsSchema: map[string]string{
			"title": "string (optional)",
			"items": "array of { name: string, logo: string (URL) }",
		},
		Example: `{"type":"Logos","props":{"title":"Trusted By","items":[{"name":"Acme Corp","logo":"https://logo.clearbit.com/acme.com"}]}}`,
	},
}

// itemsRequired lists the types whose schema mandates a non-empty items array.
var itemsRequired = map[string]struct{}{
	"Stats": {}, "Testimonials": {}, "ValuePropositions": {},
	"ProductPreview": {}, "FAQ": {}, "Logos": {},
}

// RequiresItems reports whether the canonical type t must carry a non-empty
// items prop to render.
func RequiresItems(t string) bool {
	_, ok := itemsRequired[t]
	return ok
}

// DefaultProps returns non-empty, schema-valid starter props for a canonical
// type, used by the skeleton generator so a fresh document validates as-is.
func DefaultProps(t string) map[string]any {
	switch t {
	case "Hero":
		return map[string]any{"title": "Placeholder Title"}
	case "Stats":
		return map[string]any{"items": []any{
			map[string]any{"label": "Metric", "value": "0", "suffix": ""},
		}}
	case "Testimonials":
		return map[string]any{"items": []any{
			map[string]any{"content": "Testimonial", "author": "Customer", "role": ""},
		}}
	case "ValuePropositions":
		return map[string]any{"items": []any{
			map[string]any{"title": "Benefit", "description": "Description", "icon": "Check"},
		}}
	case "ProductPreview":
		return map[string]any{"items": []any{
			map[string]any{"title": "Item", "description": "Description", "image": "", "tag": ""},
		}}
	case "FeatureHighlight":
		return map[string]any{"title": "Highlight", "description": "Description", "image": "", "align": "left", "features": []any{}}
	case "CTASection":
		return map[string]any{"title": "Call to Action", "description": "Description", "ctaText": "Get Started", "ctaLink": "#", "variant": "simple"}
	case "FAQ":
		return map[string]any{"items": []any{
			map[string]any{"question": "Question", "answer": "Answer"},
		}}
	case "Logos":
		return map[string]any{"items": []any{
			map[string]any{"name": "Partner", "logo": "https://logo.clearbit.com/example.com"},
		}}
	default:
		return map[string]any{}
	}
}

// PlaceholderItem returns one minimal valid items entry for a canonical type,
// injected by the linter when a required items array is missing or empty.
func PlaceholderItem(t string) map[string]any {
	switch t {
	case "Stats":
		return map[string]any{"label": "Metric", "value": "0", "suffix": ""}
	case "Testimonials":
		return map[string]any{"content": "Testimonial", "author": "Customer", "role": ""}
	case "ValuePropositions":
		return map[string]any{"title": "Benefit", "description": "Description", "icon": "Check"}
	case "ProductPreview":
		return map[string]any{"title": "Item", "description": "Description", "image": "", "tag": ""}
	case "FAQ":
		return map[string]any{"question": "Question", "answer": "Answer"}
	case "Logos":
		return map[string]any{"name": "Partner", "logo": "https://logo.clearbit.com/example.com"}
	default:
		return map[string]any{}
	}
}

// PromptSnippet renders the registry as a prompt section so generation calls
// see the exact prop contract for every component type.
func PromptSnippet() string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("### STRICT COMPONENT SCHEMA\n")
	b.WriteString("Every content entry must have \"type\" and \"props\". \"type\" must exactly match one of the registry keys below.\n\n")
	for _, name := range names {
		spec := Registry[name]
		fmt.Fprintf(&b, "#### %s\n- Description: %s\n- Props:\n", name, spec.Description)
		keys := make([]string, 0, len(spec.PropsSchema))
		for k := range spec.PropsSchema {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  - %s: %s\n", k, spec.PropsSchema[k])
		}
		fmt.Fprintf(&b, "- Example: %s\n\n", spec.Example)
	}
	b.WriteString("Return ONLY raw JSON. Do not wrap the output in Markdown fences.\n")
	return b.String()
}
