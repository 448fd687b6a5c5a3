// Package colorspace provides hex/HSL conversion and the OpenXML color
// transform algebra (tint, shade, luminance and saturation modifiers) used
// when resolving theme colors from presentation documents.
package colorspace

import (
	"fmt"
	"math"
	"strings"
)

// HSL is a color in hue/saturation/lightness space.
// H is in [0, 360), S and L are in [0, 1].
type HSL struct {
	H float64
	S float64
	L float64
}

// ModifierDenominator converts OpenXML modifier val attributes (thousandths
// of a percent, 100000 = 100%) to fractions.
const ModifierDenominator = 100000.0

// Modifier is a single OpenXML color transform, e.g. <a:lumMod val="75000"/>.
// Val is in thousandths of a percent.
type Modifier struct {
	Name string
	Val  int
}

// Fraction returns the modifier value as a fraction (100000 -> 1.0).
func (m Modifier) Fraction() float64 {
	return float64(m.Val) / ModifierDenominator
}

// parseChannels splits a "#RRGGBB" (or bare "RRGGBB") string into channels.
func parseChannels(hex string) (r, g, b int, ok bool) {
	clean := strings.TrimPrefix(hex, "#")
	if len(clean) != 6 {
		return 0, 0, 0, false
	}
	var rr, gg, bb int
	if _, err := fmt.Sscanf(strings.ToLower(clean), "%02x%02x%02x", &rr, &gg, &bb); err != nil {
		return 0, 0, 0, false
	}
	return rr, gg, bb, true
}

func channelsToHex(r, g, b float64) string {
	clamp := func(v float64) int {
		n := int(math.Round(v))
		if n < 0 {
			return 0
		}
		if n > 255 {
			return 255
		}
		return n
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// HexToHSL converts a hex color to HSL. Achromatic inputs yield H=0, S=0.
// ok is false when the input is not a parseable 6-digit hex color.
func HexToHSL(hex string) (HSL, bool) {
	ri, gi, bi, ok := parseChannels(hex)
	if !ok {
		return HSL{}, false
	}

	r := float64(ri) / 255
	g := float64(gi) / 255
	b := float64(bi) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return HSL{H: 0, S: 0, L: l}, true
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return HSL{H: h, S: s, L: l}, true
}

// HSLToHex converts HSL back to a "#RRGGBB" string. S and L are clamped into
// [0, 1] before conversion; each channel rounds to the nearest integer.
func HSLToHex(h, s, l float64) string {
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		v := l * 255
		return channelsToHex(v, v, v)
	}

	hue2rgb := func(p, q, t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hn := h / 360

	return channelsToHex(
		hue2rgb(p, q, hn+1.0/3)*255,
		hue2rgb(p, q, hn)*255,
		hue2rgb(p, q, hn-1.0/3)*255,
	)
}

// ApplyTint blends each channel toward white by fraction.
// fraction=0 leaves the color unchanged, fraction=1 yields white.
func ApplyTint(hex string, fraction float64) string {
	r, g, b, ok := parseChannels(hex)
	if !ok {
		return hex
	}
	return channelsToHex(
		float64(r)+(255-float64(r))*fraction,
		float64(g)+(255-float64(g))*fraction,
		float64(b)+(255-float64(b))*fraction,
	)
}

// ApplyShade scales each channel toward black. The fraction direction is
// inverted relative to ApplyTint: fraction=1 leaves the color unchanged and
// fraction=0 yields black. This matches the OpenXML convention and must not
// be "fixed" for symmetry.
func ApplyShade(hex string, fraction float64) string {
	r, g, b, ok := parseChannels(hex)
	if !ok {
		return hex
	}
	return channelsToHex(float64(r)*fraction, float64(g)*fraction, float64(b)*fraction)
}

// ApplyLumMod multiplies luminance by fraction, clamping to 1.
func ApplyLumMod(hex string, fraction float64) string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return hex
	}
	return HSLToHex(hsl.H, hsl.S, math.Min(1, hsl.L*fraction))
}

// ApplyLumOff adds fraction to luminance, clamping to 1.
func ApplyLumOff(hex string, fraction float64) string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return hex
	}
	return HSLToHex(hsl.H, hsl.S, math.Min(1, hsl.L+fraction))
}

// ApplySatMod multiplies saturation by fraction, clamping to 1.
func ApplySatMod(hex string, fraction float64) string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return hex
	}
	return HSLToHex(hsl.H, math.Min(1, hsl.S*fraction), hsl.L)
}

// ApplySatOff adds fraction to saturation, clamping to 1.
func ApplySatOff(hex string, fraction float64) string {
	hsl, ok := HexToHSL(hex)
	if !ok {
		return hex
	}
	return HSLToHex(hsl.H, math.Min(1, hsl.S+fraction), hsl.L)
}

// ApplyModifiers applies an ordered sequence of OpenXML color transforms to a
// base color, left to right. Unrecognized modifier names (alpha, hueMod and
// friends) are skipped: transparency is not representable in the output
// format, so it is dropped rather than treated as an error.
func ApplyModifiers(baseHex string, mods []Modifier) string {
	result := baseHex
	for _, m := range mods {
		f := m.Fraction()
		switch m.Name {
		case "tint":
			result = ApplyTint(result, f)
		case "shade":
			result = ApplyShade(result, f)
		case "lumMod":
			result = ApplyLumMod(result, f)
		case "lumOff":
			result = ApplyLumOff(result, f)
		case "satMod":
			result = ApplySatMod(result, f)
		case "satOff":
			result = ApplySatOff(result, f)
		}
	}
	return result
}

// Lighten blends each channel toward white by amount (0-1). Unlike ApplyTint
// this is a plain UI derivation helper, not an OpenXML transform; the two are
// kept separate so modifier semantics stay exact.
func Lighten(hex string, amount float64) string {
	r, g, b, ok := parseChannels(hex)
	if !ok {
		return hex
	}
	lighten := func(c int) float64 {
		return math.Min(255, float64(c)+(255-float64(c))*amount)
	}
	return channelsToHex(lighten(r), lighten(g), lighten(b))
}
