package template

func newElement(name string, styles ...FontStyle) Element {
	return Element{Name: name, Layout: LectureLayout[name], Styles: styles}
}

func presetElements(metaPrimary, metaSecondary, metaSecondaryRole, heading, body, caption FontStyle) []Element {
	return []Element{
		newElement(SlotMetaPrimary, metaPrimary),
		newElement(SlotMetaSecondary, metaSecondary, metaSecondaryRole),
		newElement(SlotHeading, heading),
		newElement(SlotBody, body),
		newElement(SlotImage),
		newElement(SlotCaption, caption),
	}
}

// Blank is the default white template.
var Blank = &Template{
	ID:          "blank",
	Name:        "Blank",
	Description: "Clean default template on a white background",
	Thumbnail:   "/thumbnails/blank.svg",
	Background:  Background{Color: "#FFFFFF"},
	Elements: presetElements(
		FontStyle{FontFamily: DefaultFont, FontSize: 10, FontColor: "#999999", FontWeight: WeightRegular},
		FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#434343", FontWeight: WeightBold},
		FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#999999", FontWeight: WeightMedium},
		FontStyle{FontFamily: DefaultFont, FontSize: 14, FontColor: "#434343", FontWeight: WeightBold},
		FontStyle{FontFamily: DefaultFont, FontSize: 12, FontColor: "#434343", FontWeight: WeightMedium},
		FontStyle{FontFamily: DefaultFont, FontSize: 9, FontColor: "#C0C0C0", FontWeight: WeightRegular},
	),
}

// ModernDark is a dark-background preset.
var ModernDark = &Template{
	ID:          "modern-dark",
	Name:        "Modern Dark",
	Description: "Modern template on a dark background",
	Thumbnail:   "/thumbnails/modern-dark.svg",
	Background:  Background{Color: "#1A1A2E"},
	Elements: presetElements(
		FontStyle{FontFamily: DefaultFont, FontSize: 10, FontColor: "#666688", FontWeight: WeightRegular},
		FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#E0E0E0", FontWeight: WeightBold},
		FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#8888AA", FontWeight: WeightMedium},
		FontStyle{FontFamily: DefaultFont, FontSize: 14, FontColor: "#E0E0E0", FontWeight: WeightBold},
		FontStyle{FontFamily: DefaultFont, FontSize: 12, FontColor: "#CCCCCC", FontWeight: WeightMedium},
		FontStyle{FontFamily: DefaultFont, FontSize: 9, FontColor: "#555577", FontWeight: WeightRegular},
	),
}

// SoftBlue is a muted blue preset.
var SoftBlue = &Template{
	ID:          "soft-blue",
	Name:        "Soft Blue",
	Description: "Professional template in soft blue tones",
	Thumbnail:   "/thumbnails/soft-blue.svg",
	Background:  Background{Color: "#F0F4FA"},
	Elements: presetElements(
		FontStyle{FontFamily: DefaultFont, FontSize: 10, FontColor: "#9AABC8", FontWeight: WeightRegular},
		FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#26489D", FontWeight: WeightBold},
		FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#7A8BAE", FontWeight: WeightMedium},
		FontStyle{FontFamily: DefaultFont, FontSize: 14, FontColor: "#26489D", FontWeight: WeightBold},
		FontStyle{FontFamily: DefaultFont, FontSize: 12, FontColor: "#2D3748", FontWeight: WeightMedium},
		FontStyle{FontFamily: DefaultFont, FontSize: 9, FontColor: "#A0B0C8", FontWeight: WeightRegular},
	),
}

// Presets returns the built-in templates in display order.
func Presets() []*Template {
	return []*Template{Blank, ModernDark, SoftBlue}
}

// ByID looks up a preset template. Returns nil if the id is unknown.
func ByID(id string) *Template {
	for _, t := range Presets() {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// NewBlankCustom creates a user-editable blank template with a fresh id.
func NewBlankCustom() *Template {
	primary := FontStyle{FontFamily: DefaultFont, FontSize: 11, FontColor: "#434343", FontWeight: WeightBold}
	return &Template{
		ID:          NewBlankID(),
		Name:        "Custom Template",
		Description: "User-created custom template",
		Background:  Background{Color: "#FFFFFF"},
		Elements: []Element{
			newElement(SlotMetaPrimary, FontStyle{FontFamily: DefaultFont, FontSize: 10, FontColor: "#999999", FontWeight: WeightRegular}),
			newElement(SlotMetaSecondary, primary, DeriveSecondary(primary)),
			newElement(SlotHeading, FontStyle{FontFamily: DefaultFont, FontSize: 14, FontColor: "#434343", FontWeight: WeightBold}),
			newElement(SlotBody, FontStyle{FontFamily: DefaultFont, FontSize: 12, FontColor: "#434343", FontWeight: WeightMedium}),
			newElement(SlotImage),
			newElement(SlotCaption, FontStyle{FontFamily: DefaultFont, FontSize: 9, FontColor: "#C0C0C0", FontWeight: WeightRegular}),
		},
	}
}
