package analyze

import (
	"github.com/sanalabo-jp/script-to-slides/script"
)

// palette is one entry of the deterministic rotation used when the model is
// unavailable.
type palette struct {
	bg      string
	primary string
	accent  string
}

var fallbackPalettes = []palette{
	{bg: "#EBF5FB", primary: "#1A5276", accent: "#2E86C1"},
	{bg: "#EAFAF1", primary: "#1E8449", accent: "#27AE60"},
	{bg: "#F5EEF8", primary: "#6C3483", accent: "#A569BD"},
	{bg: "#FEF9E7", primary: "#7D6608", accent: "#F1C40F"},
	{bg: "#FDEDEC", primary: "#922B21", accent: "#E74C3C"},
	{bg: "#F4F6F7", primary: "#2C3E50", accent: "#7F8C8D"},
}

func (p palette) theme() Theme {
	return Theme{
		BackgroundColor: p.bg,
		PrimaryColor:    p.primary,
		AccentColor:     p.accent,
		FontFamily:      "Arial",
		Mood:            "professional",
	}
}

// Fallback produces a deterministic analysis without calling any model:
// speakers rotate through a fixed palette list, roles fill remaining keys,
// and every slide gets a plain background hint. First-appearance order
// drives the rotation, so the same script always gets the same themes.
func Fallback(slides []script.Slide) *Result {
	themes := make(map[string]Theme)

	var speakerOrder, roleOrder []string
	for _, s := range slides {
		if _, ok := themes[s.Speaker.Name]; !ok {
			themes[s.Speaker.Name] = fallbackPalettes[len(speakerOrder)%len(fallbackPalettes)].theme()
			speakerOrder = append(speakerOrder, s.Speaker.Name)
		}
	}
	for _, s := range slides {
		seen := false
		for _, r := range roleOrder {
			if r == s.Speaker.Role {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		if _, ok := themes[s.Speaker.Role]; !ok {
			themes[s.Speaker.Role] = fallbackPalettes[len(roleOrder)%len(fallbackPalettes)].theme()
		}
		roleOrder = append(roleOrder, s.Speaker.Role)
	}

	analyses := make([]SlideAnalysis, len(slides))
	for i, s := range slides {
		accent := "#636E72"
		if t, ok := themes[s.Speaker.Name]; ok {
			accent = t.AccentColor
		} else if t, ok := themes[s.Speaker.Role]; ok {
			accent = t.AccentColor
		}
		analyses[i] = SlideAnalysis{
			LineNumber: s.LineNumber,
			Visual: Visual{
				ShapeType:  "none",
				ShapeColor: accent,
				Position:   "background",
			},
		}
	}

	return &Result{Themes: themes, Slides: analyses}
}
