// Package template defines the slide template model: six fixed semantic
// slots, their inch-based layout geometry, and the font styles attached to
// each slot. Templates are immutable once built; editing produces a new
// value rather than patching a shared one.
package template

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanalabo-jp/script-to-slides/colorspace"
)

// Slot names. Every template carries exactly one element per slot.
const (
	SlotMetaPrimary   = "meta-primary"   // per-line metadata row
	SlotMetaSecondary = "meta-secondary" // speaker name + role, two runs
	SlotHeading       = "heading"        // line summary
	SlotBody          = "body"           // dialogue text
	SlotImage         = "image"          // optional illustration
	SlotCaption       = "caption"        // supplementary detail
)

// SlotNames lists the six slots in their canonical order.
var SlotNames = []string{
	SlotMetaPrimary,
	SlotMetaSecondary,
	SlotHeading,
	SlotBody,
	SlotImage,
	SlotCaption,
}

// DefaultFont is used whenever no font can be resolved from a document theme.
const DefaultFont = "Noto Sans"

// DefaultColor is the fallback text color for heading and body slots.
const DefaultColor = "#434343"

// Font weight values used throughout the product.
const (
	WeightRegular = 400
	WeightMedium  = 500
	WeightBold    = 700
)

// FontStyle is a fully-resolved text style. Unlike extraction-time styles,
// every field is populated; defaults are applied before construction.
type FontStyle struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"` // points
	FontColor  string  `json:"fontColor"`
	FontWeight int     `json:"fontWeight"`
}

// Position is a slide coordinate in inches from the top-left corner.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is an element extent in inches.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Layout places an element on the slide. Higher ZIndex paints later.
type Layout struct {
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	ZIndex   int      `json:"zIndex"`
}

// Element is one semantic slot of a template. Styles[0] is the primary run
// style; Styles[1] is the optional secondary run, used only by the
// meta-secondary slot. The image slot carries no styles.
type Element struct {
	Name   string      `json:"name"`
	Layout Layout      `json:"layout"`
	Styles []FontStyle `json:"styles"`
}

// Background holds the slide background fill.
type Background struct {
	Color string `json:"color"`
}

// Template is the final artifact of template extraction and the input to the
// deck writer.
type Template struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail"`
	Background  Background `json:"background"`
	Elements    []Element  `json:"elements"`
}

// FindElement returns the element with the given slot name, or nil.
func (t *Template) FindElement(name string) *Element {
	for i := range t.Elements {
		if t.Elements[i].Name == name {
			return &t.Elements[i]
		}
	}
	return nil
}

// PrimaryStyle returns the element's first style, or nil if it has none.
func (e *Element) PrimaryStyle() *FontStyle {
	if len(e.Styles) == 0 {
		return nil
	}
	return &e.Styles[0]
}

// SecondaryStyle returns the element's second style, or nil if it has none.
func (e *Element) SecondaryStyle() *FontStyle {
	if len(e.Styles) < 2 {
		return nil
	}
	return &e.Styles[1]
}

// DeriveSecondary derives the role-label run style from a speaker name run:
// same family and size, color lightened 30% toward white, and bold weight
// lowered to medium. Non-bold weights are kept as-is.
func DeriveSecondary(primary FontStyle) FontStyle {
	weight := primary.FontWeight
	if weight >= WeightBold {
		weight = WeightMedium
	}
	return FontStyle{
		FontFamily: primary.FontFamily,
		FontSize:   primary.FontSize,
		FontColor:  colorspace.Lighten(primary.FontColor, 0.3),
		FontWeight: weight,
	}
}

var hexColorRe = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// IsValidHexColor reports whether s is a 3- or 6-digit hex color, with or
// without the leading '#'.
func IsValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// NormalizeHex converts a hex color to canonical "#RRGGBB" form: the '#' is
// added if missing, 3-digit shorthand is expanded, and digits are uppercased.
// ok is false when the input is not a hex color at all.
func NormalizeHex(s string) (string, bool) {
	if !IsValidHexColor(s) {
		return "", false
	}
	clean := strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(clean) == 3 {
		clean = strings.Repeat(string(clean[0]), 2) +
			strings.Repeat(string(clean[1]), 2) +
			strings.Repeat(string(clean[2]), 2)
	}
	return "#" + clean, true
}

// NewExtractedID stamps an id for a template extracted from an uploaded file.
func NewExtractedID() string {
	return fmt.Sprintf("custom-%d", time.Now().UnixMilli())
}

// NewBlankID stamps an id for a user-created blank template. A random suffix
// disambiguates blanks created within the same millisecond.
func NewBlankID() string {
	return fmt.Sprintf("custom-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// ResolveUniqueName appends _1, _2, ... until name no longer collides with
// existingNames.
func ResolveUniqueName(name string, existingNames []string) string {
	taken := make(map[string]bool, len(existingNames))
	for _, n := range existingNames {
		taken[n] = true
	}
	if !taken[name] {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Validate checks the slot-completeness invariants: all six slots present
// exactly once, meta-secondary carrying two styles, image none, and every
// other slot one.
func (t *Template) Validate() error {
	seen := make(map[string]int, len(t.Elements))
	for _, e := range t.Elements {
		seen[e.Name]++
	}
	for _, name := range SlotNames {
		if seen[name] != 1 {
			return fmt.Errorf("template %s: slot %q appears %d times, want 1", t.ID, name, seen[name])
		}
	}
	for _, e := range t.Elements {
		want := 1
		switch e.Name {
		case SlotMetaSecondary:
			want = 2
		case SlotImage:
			want = 0
		}
		if len(e.Styles) != want {
			return fmt.Errorf("template %s: slot %q has %d styles, want %d", t.ID, e.Name, len(e.Styles), want)
		}
	}
	if _, ok := NormalizeHex(t.Background.Color); !ok {
		return fmt.Errorf("template %s: invalid background color %q", t.ID, t.Background.Color)
	}
	return nil
}
