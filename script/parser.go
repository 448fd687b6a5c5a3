// Package script parses line-oriented dialogue scripts of the form
//
//	name[role]: (visual hint) dialogue text
//
// with an optional front-matter block ("type:", "topic:", "categories:")
// ahead of the first dialogue line. Blank lines and "#" comments are
// skipped. Each parsed line becomes one slide of the generated deck.
package script

import (
	"regexp"
	"strings"
)

// Type classifies the script format, steering downstream theme choices.
type Type int

const (
	General Type = iota
	Drama
	Lecture
	News
	Interview
)

func (t Type) String() string {
	switch t {
	case Drama:
		return "drama"
	case Lecture:
		return "lecture"
	case News:
		return "news"
	case Interview:
		return "interview"
	default:
		return "general"
	}
}

// ParseType maps a front-matter type name to a Type. Unknown names fall
// back to General.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drama":
		return Drama
	case "lecture":
		return Lecture
	case "news":
		return News
	case "interview":
		return Interview
	default:
		return General
	}
}

// Speaker identifies a voice in the script.
type Speaker struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// FrontMatter is the optional metadata block ahead of the dialogue.
type FrontMatter struct {
	Type       Type     `json:"type"`
	Topic      string   `json:"topic"`
	Categories []string `json:"categories"`
}

// Slide is one parsed dialogue line with its per-slide annotations.
// Summary, Image and Detail are filled in by later pipeline stages (AI
// analysis, image lookup); the parser leaves them empty.
type Slide struct {
	Speaker    Speaker           `json:"speaker"`
	Context    string            `json:"context"`
	Metadata   map[string]string `json:"metadata"`
	VisualHint string            `json:"visualHint,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Image      string            `json:"image,omitempty"`
	Detail     string            `json:"detail,omitempty"`
	LineNumber int               `json:"lineNumber"`
}

// ParseError records one line that did not match the grammar.
type ParseError struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Message string `json:"message"`
}

// Result is the outcome of parsing one script.
type Result struct {
	FrontMatter FrontMatter  `json:"frontMatter"`
	Slides      []Slide      `json:"slides"`
	IsValid     bool         `json:"isValid"`
	Errors      []ParseError `json:"errors"`
	Speakers    []Speaker    `json:"speakers"`
	TotalLines  int          `json:"totalLines"`
	ValidLines  int          `json:"validLines"`
}

var (
	lineRe        = regexp.MustCompile(`^(\S+)\[([^\]]+)\]:\s*(?:\(([^)]*)\)\s*)?(.+)$`)
	frontMatterRe = regexp.MustCompile(`^(type|topic|categories):\s*(.*)$`)
)

// validThreshold is the fraction of non-empty lines that must match the
// grammar for the script as a whole to count as valid.
const validThreshold = 0.6

var supportedExtensions = map[string]bool{
	".txt":    true,
	".md":     true,
	".text":   true,
	".script": true,
}

// IsSupportedExtension reports whether the filename carries a recognized
// script extension.
func IsSupportedExtension(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return supportedExtensions[strings.ToLower(filename[idx:])]
}

// ParseLine parses a single dialogue line. Returns nil for blank lines,
// comments, and lines that do not match the grammar.
func ParseLine(raw string, lineNumber int) *Slide {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	m := lineRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil
	}

	return &Slide{
		Speaker:    Speaker{Name: strings.TrimSpace(m[1]), Role: strings.TrimSpace(m[2])},
		Context:    strings.TrimSpace(m[4]),
		Metadata:   map[string]string{},
		VisualHint: strings.TrimSpace(m[3]),
		LineNumber: lineNumber,
	}
}

// Parse parses a whole script. It never fails: unparseable lines become
// entries in Errors, and IsValid reflects whether enough lines matched.
func Parse(content string) *Result {
	result := &Result{}

	rawLines := strings.Split(content, "\n")
	inFrontMatter := true

	for i, raw := range rawLines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if inFrontMatter {
			if m := frontMatterRe.FindStringSubmatch(line); m != nil {
				applyFrontMatter(&result.FrontMatter, m[1], m[2])
				continue
			}
			inFrontMatter = false
		}

		result.TotalLines++
		slide := ParseLine(line, i+1)
		if slide == nil {
			result.Errors = append(result.Errors, ParseError{
				Line:    i + 1,
				Content: line,
				Message: `format mismatch: expected "name[role]: (hint) dialogue"`,
			})
			continue
		}
		result.Slides = append(result.Slides, *slide)
	}

	result.ValidLines = len(result.Slides)
	result.Speakers = uniqueSpeakers(result.Slides)

	if result.TotalLines > 0 {
		ratio := float64(result.ValidLines) / float64(result.TotalLines)
		result.IsValid = ratio >= validThreshold && result.ValidLines > 0
	}

	return result
}

func applyFrontMatter(fm *FrontMatter, key, value string) {
	switch key {
	case "type":
		fm.Type = ParseType(value)
	case "topic":
		fm.Topic = strings.TrimSpace(value)
	case "categories":
		for _, c := range strings.Split(value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				fm.Categories = append(fm.Categories, c)
			}
		}
	}
}

func uniqueSpeakers(slides []Slide) []Speaker {
	var speakers []Speaker
	seen := make(map[Speaker]bool)
	for _, s := range slides {
		if !seen[s.Speaker] {
			seen[s.Speaker] = true
			speakers = append(speakers, s.Speaker)
		}
	}
	return speakers
}
