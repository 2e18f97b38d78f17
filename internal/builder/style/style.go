// Package style resolves a document's style selection and color scheme
// into the concrete presentation attributes the preview renderer and the
// structured exporters consume.
package style

import (
	"fmt"

	"github.com/speedisha/speedisha/internal/builder/domain"
)

// Attributes holds the inline CSS applied to each region of the invoice
// sheet. The shape is fixed across styles; only the values vary.
type Attributes struct {
	Container   string `json:"container"`
	Header      string `json:"header"`
	Title       string `json:"title"`
	TableHeader string `json:"tableHeader"`
	BillTo      string `json:"billTo"`
	Totals      string `json:"totals"`
	Notes       string `json:"notes"`
}

// Resolve maps a style and color scheme to presentation attributes. The
// basic style is deliberately color-blind: switching the scheme never
// changes a basic invoice. Unknown styles fall back to the neutral basic
// treatment rather than failing the render.
func Resolve(s domain.Style, colors domain.ColorScheme) Attributes {
	switch s {
	case domain.StyleStyled:
		return styled(colors)
	case domain.StylePremium:
		return premium(colors)
	default:
		return basic()
	}
}

func basic() Attributes {
	return Attributes{
		Container:   "background-color: #ffffff;",
		Header:      "border-bottom: 2px solid #e5e7eb; padding-bottom: 16px;",
		Title:       "color: #111827;",
		TableHeader: "background-color: #f9fafb; color: #374151;",
		BillTo:      "background-color: transparent;",
		Totals:      "border-top: 1px solid #e5e7eb;",
		Notes:       "color: #6b7280;",
	}
}

// styled applies translucent tints of the scheme. The hex-alpha suffixes
// (0a, 15) keep the tint light regardless of how dark the chosen colors
// are.
func styled(c domain.ColorScheme) Attributes {
	return Attributes{
		Container:   fmt.Sprintf("background-color: %s0a;", c.Secondary),
		Header:      fmt.Sprintf("border-bottom: 2px solid %s; padding-bottom: 16px;", c.Primary),
		Title:       fmt.Sprintf("color: %s;", c.Primary),
		TableHeader: fmt.Sprintf("background-color: %s15; color: %s;", c.Secondary, c.Primary),
		BillTo:      fmt.Sprintf("background-color: %s0a; border-radius: 8px; padding: 16px;", c.Accent),
		Totals:      fmt.Sprintf("border-top: 2px solid %s;", c.Primary),
		Notes:       fmt.Sprintf("color: %s;", c.Secondary),
	}
}

// premium layers gradients of all three colors plus accent borders.
func premium(c domain.ColorScheme) Attributes {
	return Attributes{
		Container: fmt.Sprintf(
			"background: linear-gradient(135deg, %s0a 0%%, %s0a 50%%, %s0a 100%%);",
			c.Primary, c.Secondary, c.Accent,
		),
		Header: fmt.Sprintf(
			"background: linear-gradient(90deg, %s15 0%%, %s15 100%%); border-bottom: 3px solid %s; padding: 16px; border-radius: 8px 8px 0 0;",
			c.Primary, c.Accent, c.Primary,
		),
		Title: fmt.Sprintf(
			"color: %s; text-shadow: 1px 1px 2px %s33;",
			c.Primary, c.Secondary,
		),
		TableHeader: fmt.Sprintf(
			"background: linear-gradient(90deg, %s26 0%%, %s26 100%%); color: %s; border-bottom: 2px solid %s;",
			c.Secondary, c.Accent, c.Primary, c.Accent,
		),
		BillTo: fmt.Sprintf(
			"background: linear-gradient(135deg, %s0a 0%%, %s15 100%%); border: 1px solid %s33; border-radius: 8px; padding: 16px;",
			c.Accent, c.Secondary, c.Accent,
		),
		Totals: fmt.Sprintf(
			"border-top: 3px double %s; background-color: %s0a;",
			c.Primary, c.Accent,
		),
		Notes: fmt.Sprintf(
			"color: %s; border-left: 3px solid %s; padding-left: 12px;",
			c.Secondary, c.Accent,
		),
	}
}
