package pptx

import (
	"github.com/antchfx/xmlquery"

	"github.com/sanalabo-jp/script-to-slides/template"
)

// schemeSlots are the twelve fixed color roles of an OpenXML theme.
var schemeSlots = []string{
	"dk1", "dk2", "lt1", "lt2",
	"accent1", "accent2", "accent3", "accent4", "accent5", "accent6",
	"hlink", "folHlink",
}

// schemeAliases maps the placeholder-facing slot names onto the theme slots
// that actually carry the colors (tx/bg names are views over dk/lt).
var schemeAliases = map[string]string{
	"tx1": "dk1",
	"tx2": "dk2",
	"bg1": "lt1",
	"bg2": "lt2",
}

// Theme is the resolved lookup table from one ppt/theme/themeN.xml part:
// scheme-slot names to concrete hex colors, plus the two font roles.
// Slots that could not be resolved are simply absent from ColorScheme.
type Theme struct {
	ColorScheme map[string]string
	MajorFont   string
	MinorFont   string
}

func defaultTheme() Theme {
	return Theme{
		ColorScheme: make(map[string]string),
		MajorFont:   template.DefaultFont,
		MinorFont:   template.DefaultFont,
	}
}

// SchemeColor resolves a scheme-slot name to a hex color, retrying through
// the alias table when the direct slot is absent.
func (t Theme) SchemeColor(name string) (string, bool) {
	if c, ok := t.ColorScheme[name]; ok {
		return c, true
	}
	if alias, ok := schemeAliases[name]; ok {
		if c, ok := t.ColorScheme[alias]; ok {
			return c, true
		}
	}
	return "", false
}

// ResolveFont maps theme font back-references (+mj-lt, +mn-ea, ...) to the
// resolved major/minor font; any other typeface passes through unchanged.
func (t Theme) ResolveFont(typeface string) string {
	switch typeface {
	case "+mj-lt", "+mj-ea":
		return t.MajorFont
	case "+mn-lt", "+mn-ea":
		return t.MinorFont
	}
	return typeface
}

// parseTheme builds a Theme from a theme document. Missing slots are left
// absent; unresolvable fonts fall back to the product default. Never fails.
func parseTheme(doc *xmlquery.Node) Theme {
	th := defaultTheme()
	if doc == nil {
		return th
	}

	if clrScheme := findOne(doc, "clrScheme"); clrScheme != nil {
		for _, slot := range schemeSlots {
			el := childByName(clrScheme, slot)
			if el == nil {
				continue
			}
			if c, ok := schemeEntryColor(el); ok {
				th.ColorScheme[slot] = c
			}
		}
	}

	if f := themeFont(doc, "majorFont"); f != "" {
		th.MajorFont = f
	}
	if f := themeFont(doc, "minorFont"); f != "" {
		th.MinorFont = f
	}

	return th
}

// schemeEntryColor reads the concrete color of one scheme slot: a direct
// sRGB value when present, otherwise the last color the system rendered
// for a sysClr reference.
func schemeEntryColor(el *xmlquery.Node) (string, bool) {
	if srgb := findOne(el, "srgbClr"); srgb != nil {
		if hex, ok := template.NormalizeHex(srgb.SelectAttr("val")); ok {
			return hex, true
		}
	}
	if sys := findOne(el, "sysClr"); sys != nil {
		if hex, ok := template.NormalizeHex(sys.SelectAttr("lastClr")); ok {
			return hex, true
		}
	}
	return "", false
}

// themeFont extracts the typeface of a majorFont/minorFont element,
// preferring the latin script and falling back to east-Asian when the latin
// entry is itself a theme back-reference or empty.
func themeFont(doc *xmlquery.Node, tag string) string {
	fontEl := findOne(doc, tag)
	if fontEl == nil {
		return ""
	}

	if latin := findOne(fontEl, "latin"); latin != nil {
		if tf := latin.SelectAttr("typeface"); tf != "" && tf[0] != '+' {
			return tf
		}
	}
	if ea := findOne(fontEl, "ea"); ea != nil {
		if tf := ea.SelectAttr("typeface"); tf != "" && tf[0] != '+' {
			return tf
		}
	}
	return ""
}
