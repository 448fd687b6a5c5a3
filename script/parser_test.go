package script

import (
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantNil    bool
		wantName   string
		wantRole   string
		wantHint   string
		wantText   string
	}{
		{
			name:     "basic dialogue",
			line:     "Tanaka[Teacher]: Welcome to today's lecture.",
			wantName: "Tanaka",
			wantRole: "Teacher",
			wantText: "Welcome to today's lecture.",
		},
		{
			name:     "with visual hint",
			line:     "Sato[Student]: (raises hand) I have a question.",
			wantName: "Sato",
			wantRole: "Student",
			wantHint: "raises hand",
			wantText: "I have a question.",
		},
		{
			name:     "empty visual hint",
			line:     "Sato[Student]: () Just the text.",
			wantName: "Sato",
			wantRole: "Student",
			wantText: "Just the text.",
		},
		{
			name:     "parentheses mid-text are not a hint",
			line:     "Ai[Host]: The result (about 40%) surprised everyone.",
			wantName: "Ai",
			wantRole: "Host",
			wantText: "The result (about 40%) surprised everyone.",
		},
		{name: "blank line", line: "   ", wantNil: true},
		{name: "comment", line: "# stage directions here", wantNil: true},
		{name: "no role brackets", line: "Tanaka: hello", wantNil: true},
		{name: "space in name", line: "Mr Tanaka[Teacher]: hello", wantNil: true},
		{name: "missing colon", line: "Tanaka[Teacher] hello", wantNil: true},
		{name: "empty dialogue", line: "Tanaka[Teacher]:", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slide := ParseLine(tt.line, 7)
			if tt.wantNil {
				if slide != nil {
					t.Fatalf("expected nil, got %+v", slide)
				}
				return
			}
			if slide == nil {
				t.Fatal("expected a slide, got nil")
			}
			if slide.Speaker.Name != tt.wantName {
				t.Errorf("name = %q, want %q", slide.Speaker.Name, tt.wantName)
			}
			if slide.Speaker.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", slide.Speaker.Role, tt.wantRole)
			}
			if slide.VisualHint != tt.wantHint {
				t.Errorf("visual hint = %q, want %q", slide.VisualHint, tt.wantHint)
			}
			if slide.Context != tt.wantText {
				t.Errorf("context = %q, want %q", slide.Context, tt.wantText)
			}
			if slide.LineNumber != 7 {
				t.Errorf("line number = %d, want 7", slide.LineNumber)
			}
		})
	}
}

func TestParseFullScript(t *testing.T) {
	content := strings.Join([]string{
		"type: lecture",
		"topic: Introduction to Statistics",
		"categories: math, statistics",
		"",
		"# opening",
		"Tanaka[Teacher]: Welcome, everyone.",
		"Sato[Student]: (nods) Glad to be here.",
		"Tanaka[Teacher]: Let's begin with the mean.",
	}, "\n")

	result := Parse(content)

	if !result.IsValid {
		t.Fatalf("expected valid script, errors: %+v", result.Errors)
	}
	if result.FrontMatter.Type != Lecture {
		t.Errorf("type = %v, want lecture", result.FrontMatter.Type)
	}
	if result.FrontMatter.Topic != "Introduction to Statistics" {
		t.Errorf("topic = %q", result.FrontMatter.Topic)
	}
	if len(result.FrontMatter.Categories) != 2 || result.FrontMatter.Categories[1] != "statistics" {
		t.Errorf("categories = %v", result.FrontMatter.Categories)
	}
	if len(result.Slides) != 3 {
		t.Fatalf("slides = %d, want 3", len(result.Slides))
	}
	if result.TotalLines != 3 || result.ValidLines != 3 {
		t.Errorf("counts = %d/%d, want 3/3", result.ValidLines, result.TotalLines)
	}
	if len(result.Speakers) != 2 {
		t.Errorf("speakers = %v, want 2 unique", result.Speakers)
	}
	if result.Slides[0].LineNumber != 6 {
		t.Errorf("first dialogue line number = %d, want 6", result.Slides[0].LineNumber)
	}
}

func TestParseValidityThreshold(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantValid bool
	}{
		{
			name: "3 of 5 valid passes at 60 percent",
			lines: []string{
				"A[x]: one",
				"A[x]: two",
				"A[x]: three",
				"not a dialogue line",
				"neither is this",
			},
			wantValid: true,
		},
		{
			name: "2 of 5 valid fails",
			lines: []string{
				"A[x]: one",
				"A[x]: two",
				"junk",
				"junk",
				"junk",
			},
			wantValid: false,
		},
		{
			name:      "all junk",
			lines:     []string{"junk", "more junk"},
			wantValid: false,
		},
		{
			name:      "empty input",
			lines:     nil,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(strings.Join(tt.lines, "\n"))
			if result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (valid %d of %d)",
					result.IsValid, tt.wantValid, result.ValidLines, result.TotalLines)
			}
		})
	}
}

func TestParseErrorsRecorded(t *testing.T) {
	result := Parse("A[x]: fine\nbroken line here\nA[x]: fine again")

	if len(result.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(result.Errors))
	}
	if result.Errors[0].Line != 2 {
		t.Errorf("error line = %d, want 2", result.Errors[0].Line)
	}
	if result.Errors[0].Content != "broken line here" {
		t.Errorf("error content = %q", result.Errors[0].Content)
	}
}

func TestFrontMatterEndsAtFirstDialogue(t *testing.T) {
	// A "topic:" line after dialogue has started is an ordinary invalid line,
	// not front matter.
	result := Parse("A[x]: hello\ntopic: too late")

	if result.FrontMatter.Topic != "" {
		t.Errorf("topic = %q, want empty", result.FrontMatter.Topic)
	}
	if result.TotalLines != 2 {
		t.Errorf("total lines = %d, want 2", result.TotalLines)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"lecture", Lecture},
		{"DRAMA", Drama},
		{" news ", News},
		{"interview", Interview},
		{"general", General},
		{"podcast", General},
		{"", General},
	}
	for _, tt := range tests {
		if got := ParseType(tt.in); got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsSupportedExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"script.txt", true},
		{"Notes.MD", true},
		{"a.text", true},
		{"show.script", true},
		{"deck.pptx", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.name); got != tt.want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
