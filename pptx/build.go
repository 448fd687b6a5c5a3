package pptx

import (
	"sort"
	"strings"

	"github.com/sanalabo-jp/script-to-slides/template"
)

// slotDefaults are the hardcoded styles used when neither the preferred
// placeholder role nor the ranked fallback can supply a value.
type slotDefaults struct {
	fontSize   float64
	fontColor  string
	fontWeight int
}

var (
	metaPrimaryDefaults = slotDefaults{10, "#999999", template.WeightRegular}
	headingDefaults     = slotDefaults{14, template.DefaultColor, template.WeightBold}
	bodyDefaults        = slotDefaults{12, template.DefaultColor, template.WeightMedium}
	captionDefaults     = slotDefaults{9, "#C0C0C0", template.WeightRegular}
)

// rankBySize returns the placeholders that declare an explicit font size,
// sorted descending by size. The sort is stable so placeholders of equal
// size keep document order.
func rankBySize(phs []PlaceholderStyle) []PlaceholderStyle {
	var ranked []PlaceholderStyle
	for _, ph := range phs {
		if ph.FontSize > 0 {
			ranked = append(ranked, ph)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FontSize > ranked[j].FontSize
	})
	return ranked
}

// rankAt returns the ranked entry at idx, or nil when out of range.
// Negative indexes count from the end (-1 is the smallest size).
func rankAt(ranked []PlaceholderStyle, idx int) *PlaceholderStyle {
	if idx < 0 {
		idx += len(ranked)
	}
	if idx < 0 || idx >= len(ranked) {
		return nil
	}
	return &ranked[idx]
}

// phToStyle converts an extracted placeholder into a fully-resolved font
// style, filling absent fields from the slot defaults. The font family
// falls back to the theme minor font, then the product default.
func phToStyle(ph *PlaceholderStyle, def slotDefaults, th Theme) template.FontStyle {
	family := th.MinorFont
	if family == "" {
		family = template.DefaultFont
	}

	style := template.FontStyle{
		FontFamily: family,
		FontSize:   def.fontSize,
		FontColor:  def.fontColor,
		FontWeight: def.fontWeight,
	}
	if ph == nil {
		return style
	}

	if ph.FontFamily != "" {
		style.FontFamily = ph.FontFamily
	}
	if ph.FontSize > 0 {
		style.FontSize = ph.FontSize
	}
	if ph.FontColor != "" {
		style.FontColor = ph.FontColor
	}
	if ph.Bold {
		style.FontWeight = template.WeightBold
	}
	return style
}

// firstOfTypes returns the first placeholder whose role matches any of the
// given types, in preference order.
func firstOfTypes(byType map[string]*PlaceholderStyle, types ...string) *PlaceholderStyle {
	for _, t := range types {
		if ph, ok := byType[t]; ok {
			return ph
		}
	}
	return nil
}

// buildTemplate maps the merged placeholder roles onto the six semantic
// slots and assembles the final template. Every lookup has a default, so
// this never fails regardless of how little was extracted.
func buildTemplate(fileName string, merged ExtractedStyles, th Theme) *template.Template {
	byType := make(map[string]*PlaceholderStyle, len(merged.Placeholders))
	for i := range merged.Placeholders {
		ph := &merged.Placeholders[i]
		byType[ph.Type] = ph
	}

	titlePh := firstOfTypes(byType, "title", "ctrTitle")
	bodyPh := byType["body"]
	subtitlePh := byType["subTitle"]
	captionPh := firstOfTypes(byType, "ftr", "sldNum", "dt")

	ranked := rankBySize(merged.Placeholders)
	if titlePh == nil {
		titlePh = rankAt(ranked, 0)
	}
	if bodyPh == nil {
		bodyPh = rankAt(ranked, 1)
	}
	if subtitlePh == nil {
		subtitlePh = rankAt(ranked, 2)
	}
	if captionPh == nil {
		captionPh = rankAt(ranked, -1)
	}

	metaPrimary := phToStyle(subtitlePh, metaPrimaryDefaults, th)
	heading := phToStyle(titlePh, headingDefaults, th)
	body := phToStyle(bodyPh, bodyDefaults, th)
	caption := phToStyle(captionPh, captionDefaults, th)

	// The speaker slot is never extracted directly: its name run follows the
	// title-like lookup for color, sits one point above the metadata row
	// (11pt minimum), and is always bold. The role run is derived from it.
	speakerSize := metaPrimary.FontSize + 1
	if speakerSize < 11 {
		speakerSize = 11
	}
	speakerPrimary := template.FontStyle{
		FontFamily: metaPrimary.FontFamily,
		FontSize:   speakerSize,
		FontColor:  heading.FontColor,
		FontWeight: template.WeightBold,
	}

	bgColor := merged.Background
	if bgColor == "" {
		bgColor = "#FFFFFF"
	}

	name := strings.TrimSuffix(fileName, ".pptx")
	name = strings.TrimSuffix(name, ".PPTX")
	if name == "" {
		name = "Custom Template"
	}

	return &template.Template{
		ID:          template.NewExtractedID(),
		Name:        name,
		Description: "Custom template extracted from an uploaded .pptx file",
		Background:  template.Background{Color: bgColor},
		Elements: []template.Element{
			{Name: template.SlotMetaPrimary, Layout: template.LectureLayout[template.SlotMetaPrimary], Styles: []template.FontStyle{metaPrimary}},
			{Name: template.SlotMetaSecondary, Layout: template.LectureLayout[template.SlotMetaSecondary], Styles: []template.FontStyle{speakerPrimary, template.DeriveSecondary(speakerPrimary)}},
			{Name: template.SlotHeading, Layout: template.LectureLayout[template.SlotHeading], Styles: []template.FontStyle{heading}},
			{Name: template.SlotBody, Layout: template.LectureLayout[template.SlotBody], Styles: []template.FontStyle{body}},
			{Name: template.SlotImage, Layout: template.LectureLayout[template.SlotImage]},
			{Name: template.SlotCaption, Layout: template.LectureLayout[template.SlotCaption], Styles: []template.FontStyle{caption}},
		},
	}
}
