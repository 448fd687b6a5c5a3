package deck

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sanalabo-jp/script-to-slides/script"
	"github.com/sanalabo-jp/script-to-slides/template"
)

func parseScript(t *testing.T, content string) *script.Result {
	t.Helper()
	result := script.Parse(content)
	if !result.IsValid {
		t.Fatalf("fixture script did not parse: %+v", result.Errors)
	}
	return result
}

func openDeck(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("generated deck is not a zip archive: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found in deck", name)
	return ""
}

const fixtureScript = `type: lecture
topic: Go Concurrency
categories: programming, go

Tanaka[Teacher]: Goroutines are cheap.
Sato[Student]: (leans in) How cheap exactly?
Tanaka[Teacher]: A few kilobytes of stack each.
`

func TestGenerateProducesWellFormedPackage(t *testing.T) {
	result := parseScript(t, fixtureScript)

	data, err := Generate(result, template.Blank)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	zr := openDeck(t, data)

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/theme/theme1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/slide4.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	}
	have := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		have[f.Name] = true
	}
	for _, name := range required {
		if !have[name] {
			t.Errorf("missing part %s", name)
		}
	}

	// Cover plus one slide per dialogue line.
	pres := readPart(t, zr, "ppt/presentation.xml")
	if got := strings.Count(pres, "<p:sldId "); got != 4 {
		t.Errorf("slide id count = %d, want 4", got)
	}
	if !strings.Contains(pres, `cx="12192000"`) || !strings.Contains(pres, `cy="6858000"`) {
		t.Error("presentation is not widescreen 13.33x7.5in")
	}
}

func TestGenerateCoverSlide(t *testing.T) {
	result := parseScript(t, fixtureScript)

	data, err := Generate(result, template.Blank)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cover := readPart(t, openDeck(t, data), "ppt/slides/slide1.xml")

	if !strings.Contains(cover, "Go Concurrency") {
		t.Error("cover is missing the topic title")
	}
	if !strings.Contains(cover, "programming · go") {
		t.Error("cover is missing the joined categories")
	}
	if !strings.Contains(cover, "Tanaka [Teacher], Sato [Student]") {
		t.Error("cover is missing the speaker roster")
	}
	if !strings.Contains(cover, "3 slides") {
		t.Error("cover is missing the slide count")
	}
}

func TestGenerateContentSlide(t *testing.T) {
	result := parseScript(t, fixtureScript)

	data, err := Generate(result, template.ModernDark)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	zr := openDeck(t, data)

	slide2 := readPart(t, zr, "ppt/slides/slide2.xml")
	if !strings.Contains(slide2, "Goroutines are cheap.") {
		t.Error("content slide is missing the dialogue text")
	}
	if !strings.Contains(slide2, ">Tanaka</a:t>") {
		t.Error("content slide is missing the speaker name run")
	}
	if !strings.Contains(slide2, "> Teacher</a:t>") {
		t.Error("content slide is missing the role run")
	}

	wantBg := strings.TrimPrefix(template.ModernDark.Background.Color, "#")
	if !strings.Contains(slide2, `val="`+wantBg+`"`) {
		t.Errorf("content slide background does not use template color %s", wantBg)
	}
}

func TestGenerateSkipsEmptyOptionalSlots(t *testing.T) {
	result := parseScript(t, "A[x]: only dialogue here")

	data, err := Generate(result, template.Blank)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	slide2 := readPart(t, openDeck(t, data), "ppt/slides/slide2.xml")

	// No summary, detail or metadata on the parsed line: only the speaker
	// box and the dialogue box should render.
	if strings.Contains(slide2, `name="Heading"`) {
		t.Error("heading box rendered without a summary")
	}
	if strings.Contains(slide2, `name="Detail"`) {
		t.Error("detail box rendered without detail text")
	}
	if strings.Contains(slide2, `name="Metadata"`) {
		t.Error("metadata box rendered without metadata")
	}
	if !strings.Contains(slide2, `name="Dialogue"`) {
		t.Error("dialogue box missing")
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	result := parseScript(t, "A[x]: hello")

	if _, err := Generate(nil, template.Blank); err == nil {
		t.Error("expected error for nil result")
	}
	if _, err := Generate(result, nil); err == nil {
		t.Error("expected error for nil template")
	}

	broken := &template.Template{ID: "broken", Name: "Broken"}
	if _, err := Generate(result, broken); err == nil {
		t.Error("expected error for template missing required slots")
	}

	empty := script.Parse("")
	if _, err := Generate(empty, template.Blank); err == nil {
		t.Error("expected error for empty script")
	}
}
