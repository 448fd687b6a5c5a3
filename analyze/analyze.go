// Package analyze asks a language model to design per-speaker slide themes
// and per-line visual hints for a parsed script. The model is called with a
// strict JSON schema; when no API key is configured or the call fails, a
// deterministic palette rotation stands in so deck generation never blocks
// on the model.
package analyze

import (
	"github.com/sanalabo-jp/script-to-slides/script"
)

// Theme is the suggested look for one speaker or role.
type Theme struct {
	BackgroundColor string `json:"backgroundColor"`
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	FontFamily      string `json:"fontFamily"`
	Mood            string `json:"mood"`
}

// Visual is the decorative suggestion for one slide.
type Visual struct {
	ShapeType  string `json:"shapeType"`
	ShapeColor string `json:"shapeColor"`
	Position   string `json:"position"`
	Emoji      string `json:"emoji,omitempty"`
}

// Supplementary is an optional short explanation of a dialogue line.
type Supplementary struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords,omitempty"`
}

// SlideAnalysis carries the model's output for one dialogue line.
type SlideAnalysis struct {
	LineNumber    int            `json:"lineNumber"`
	Visual        Visual         `json:"visual"`
	Supplementary *Supplementary `json:"supplementary,omitempty"`
}

// Result is the full analysis of one script.
type Result struct {
	Themes map[string]Theme `json:"themes"`
	Slides []SlideAnalysis  `json:"slides"`
}

// ThemeFor returns the theme for a speaker, trying the speaker name first
// and the role second.
func (r *Result) ThemeFor(sp script.Speaker) (Theme, bool) {
	if t, ok := r.Themes[sp.Name]; ok {
		return t, true
	}
	t, ok := r.Themes[sp.Role]
	return t, ok
}

// Apply copies supplementary explanations onto the parsed slides by line
// number: the text becomes the slide detail shown in the caption slot.
func (r *Result) Apply(slides []script.Slide) {
	byLine := make(map[int]*SlideAnalysis, len(r.Slides))
	for i := range r.Slides {
		byLine[r.Slides[i].LineNumber] = &r.Slides[i]
	}
	for i := range slides {
		sa, ok := byLine[slides[i].LineNumber]
		if !ok || sa.Supplementary == nil {
			continue
		}
		if slides[i].Detail == "" {
			slides[i].Detail = sa.Supplementary.Text
		}
	}
}
