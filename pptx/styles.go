package pptx

import (
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/sanalabo-jp/script-to-slides/colorspace"
	"github.com/sanalabo-jp/script-to-slides/template"
)

// PlaceholderStyle is the text style resolved for one placeholder shape
// within a master or layout document. It is partial by design: the zero
// value of every field after Type means "not specified at this level", and
// such fields never overwrite values from another level during merge.
type PlaceholderStyle struct {
	Type       string
	FontFamily string
	FontSize   float64 // points
	FontColor  string
	Bold       bool
}

// ExtractedStyles is the per-document extraction result: an optional
// background color ("" when inherited) and one entry per placeholder shape
// found, duplicates by type possible before merging.
type ExtractedStyles struct {
	Background   string
	Placeholders []PlaceholderStyle
}

// extractStyles walks one slide document (master or layout).
func extractStyles(doc *xmlquery.Node, th Theme) ExtractedStyles {
	return ExtractedStyles{
		Background:   extractBackground(doc, th),
		Placeholders: extractPlaceholders(doc, th),
	}
}

// extractBackground resolves the document background: an explicit solid
// fill on bgPr wins, then a style reference (bgRef) resolved through the
// color scheme. Returns "" when the background is inherited.
func extractBackground(doc *xmlquery.Node, th Theme) string {
	if bgPr := findOne(doc, "bgPr"); bgPr != nil {
		if fill := findOne(bgPr, "solidFill"); fill != nil {
			if c := resolveColor(fill, th); c != "" {
				return c
			}
		}
	}
	if bgRef := findOne(doc, "bgRef"); bgRef != nil {
		if c := resolveColor(bgRef, th); c != "" {
			return c
		}
	}
	return ""
}

// resolveColor resolves a color container (solidFill, bgRef, ...) to a hex
// color: a literal sRGB value is used as-is, a scheme reference goes through
// the theme with alias retry. Attached transform children are applied in
// order. Unresolvable references yield "".
func resolveColor(el *xmlquery.Node, th Theme) string {
	if srgb := findOne(el, "srgbClr"); srgb != nil {
		if hex, ok := template.NormalizeHex(srgb.SelectAttr("val")); ok {
			return colorspace.ApplyModifiers(hex, colorModifiers(srgb))
		}
	}
	if scheme := findOne(el, "schemeClr"); scheme != nil {
		if base, ok := th.SchemeColor(scheme.SelectAttr("val")); ok {
			return colorspace.ApplyModifiers(base, colorModifiers(scheme))
		}
	}
	return ""
}

// extractPlaceholders scans every shape in the document and extracts a
// style entry for each one carrying a placeholder marker. A marker with no
// declared type counts as "body".
func extractPlaceholders(doc *xmlquery.Node, th Theme) []PlaceholderStyle {
	var result []PlaceholderStyle
	for _, sp := range findAll(doc, "sp") {
		ph := findOne(sp, "ph")
		if ph == nil {
			continue
		}

		phType := ph.SelectAttr("type")
		if phType == "" {
			phType = "body"
		}

		style := extractTextStyle(sp, th)
		style.Type = phType
		result = append(result, style)
	}
	return result
}

// extractTextStyle resolves the default run properties of one shape. The
// lookup prefers the list-style level-1 definition, then the body default,
// then an explicit end-paragraph or literal run property. A shape with no
// source at all yields an all-absent style; it still participates in
// role matching downstream.
func extractTextStyle(sp *xmlquery.Node, th Theme) PlaceholderStyle {
	var style PlaceholderStyle

	styleEl := findDefRPr(sp, "lstStyle")
	if styleEl == nil {
		styleEl = findDefRPr(sp, "bodyPr")
	}
	if styleEl == nil {
		styleEl = findOne(sp, "endParaRPr")
	}
	if styleEl == nil {
		styleEl = findOne(sp, "rPr")
	}
	if styleEl == nil {
		return style
	}

	// sz is stored in hundredths of a point. Non-numeric values are treated
	// as absent, not as zero.
	if sz := styleEl.SelectAttr("sz"); sz != "" {
		if v, err := strconv.ParseFloat(sz, 64); err == nil && v > 0 {
			style.FontSize = v / 100
		}
	}

	if b := styleEl.SelectAttr("b"); b == "1" || b == "true" {
		style.Bold = true
	}

	if fill := findOne(styleEl, "solidFill"); fill != nil {
		style.FontColor = resolveColor(fill, th)
	}

	style.FontFamily = extractFontFamily(styleEl, th)

	return style
}

// findDefRPr locates a defRPr inside the named container, preferring the
// level-1 paragraph properties over the generic paragraph default.
func findDefRPr(sp *xmlquery.Node, containerTag string) *xmlquery.Node {
	container := findOne(sp, containerTag)
	if container == nil {
		return nil
	}

	if lvl1 := findOne(container, "lvl1pPr"); lvl1 != nil {
		if def := findOne(lvl1, "defRPr"); def != nil {
			return def
		}
	}
	if pPr := findOne(container, "pPr"); pPr != nil {
		if def := findOne(pPr, "defRPr"); def != nil {
			return def
		}
	}
	return nil
}

// extractFontFamily reads the run's typeface, latin first, east-Asian as
// fallback, resolving theme back-references through the theme fonts.
func extractFontFamily(el *xmlquery.Node, th Theme) string {
	if latin := findOne(el, "latin"); latin != nil {
		if tf := latin.SelectAttr("typeface"); tf != "" {
			return th.ResolveFont(tf)
		}
	}
	if ea := findOne(el, "ea"); ea != nil {
		if tf := ea.SelectAttr("typeface"); tf != "" {
			return th.ResolveFont(tf)
		}
	}
	return ""
}
