package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/sanalabo-jp/script-to-slides/template"
)

func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func buildArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		writeZipFile(t, zw, name, content)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

const themeFixture = `<?xml version="1.0"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Fixture">
  <a:themeElements>
    <a:clrScheme name="Fixture">
      <a:dk1><a:srgbClr val="111111"/></a:dk1>
      <a:lt1><a:sysClr val="window" lastClr="FEFEFE"/></a:lt1>
      <a:dk2><a:srgbClr val="222222"/></a:dk2>
      <a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
      <a:accent1><a:srgbClr val="4472C4"/></a:accent1>
    </a:clrScheme>
    <a:fontScheme name="Fixture">
      <a:majorFont><a:latin typeface="Georgia"/></a:majorFont>
      <a:minorFont><a:latin typeface="Verdana"/></a:minorFont>
    </a:fontScheme>
  </a:themeElements>
</a:theme>`

// phShape renders one placeholder shape with a level-1 default run property.
func phShape(phType, rprAttrs, rprChildren string) string {
	return fmt.Sprintf(`<p:sp>
  <p:nvSpPr><p:cNvPr id="2" name=""/><p:cNvSpPr/><p:nvPr><p:ph type=%q/></p:nvPr></p:nvSpPr>
  <p:txBody>
    <a:bodyPr/>
    <a:lstStyle>
      <a:lvl1pPr><a:defRPr %s>%s</a:defRPr></a:lvl1pPr>
    </a:lstStyle>
  </p:txBody>
</p:sp>`, phType, rprAttrs, rprChildren)
}

func slideDoc(root, bg, shapes string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<p:%s xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld>
    %s
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
      %s
    </p:spTree>
  </p:cSld>
</p:%s>`, root, bg, shapes, root)
}

func solidBg(hex string) string {
	return fmt.Sprintf(`<p:bg><p:bgPr><a:solidFill><a:srgbClr val=%q/></a:solidFill></p:bgPr></p:bg>`, hex)
}

func fullArchive(t *testing.T) []byte {
	t.Helper()
	master := slideDoc("sldMaster", solidBg("EEEEEE"),
		phShape("title", `sz="2400" b="1"`, `<a:solidFill><a:srgbClr val="000000"/></a:solidFill><a:latin typeface="+mj-lt"/>`)+
			phShape("body", `sz="1400"`, `<a:solidFill><a:schemeClr val="tx1"/></a:solidFill>`)+
			phShape("subTitle", `sz="1200"`, ``)+
			phShape("ftr", `sz="900"`, ``))
	layout := slideDoc("sldLayout", "",
		phShape("title", `sz="3200"`, ``))

	return buildArchive(t, map[string]string{
		"ppt/theme/theme1.xml":              themeFixture,
		"ppt/slideMasters/slideMaster1.xml": master,
		"ppt/slideLayouts/slideLayout1.xml": layout,
	})
}

func styleOf(t *testing.T, tpl *template.Template, slot string) template.FontStyle {
	t.Helper()
	el := tpl.FindElement(slot)
	if el == nil {
		t.Fatalf("slot %q missing", slot)
	}
	s := el.PrimaryStyle()
	if s == nil {
		t.Fatalf("slot %q has no style", slot)
	}
	return *s
}

func TestExtractFullArchive(t *testing.T) {
	result, err := Extract(fullArchive(t), "corporate.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.IsPartial || len(result.Warnings) != 0 {
		t.Errorf("unexpected degradation: partial=%v warnings=%v", result.IsPartial, result.Warnings)
	}

	tpl := result.Template
	if err := tpl.Validate(); err != nil {
		t.Fatalf("extracted template invalid: %v", err)
	}
	if tpl.Name != "corporate" {
		t.Errorf("name = %q, want corporate", tpl.Name)
	}
	if tpl.Background.Color != "#EEEEEE" {
		t.Errorf("background = %s, want master #EEEEEE", tpl.Background.Color)
	}

	heading := styleOf(t, tpl, template.SlotHeading)
	// Layout size overlays the master; the master keeps color and bold.
	if heading.FontSize != 32 {
		t.Errorf("heading size = %v, want 32 from layout", heading.FontSize)
	}
	if heading.FontColor != "#000000" {
		t.Errorf("heading color = %s, want #000000 from master", heading.FontColor)
	}
	if heading.FontWeight != template.WeightBold {
		t.Errorf("heading weight = %d, want bold", heading.FontWeight)
	}
	if heading.FontFamily != "Georgia" {
		t.Errorf("heading family = %q, want major font Georgia", heading.FontFamily)
	}

	body := styleOf(t, tpl, template.SlotBody)
	if body.FontSize != 14 {
		t.Errorf("body size = %v, want 14", body.FontSize)
	}
	// tx1 aliases dk1.
	if body.FontColor != "#111111" {
		t.Errorf("body color = %s, want #111111 via tx1 alias", body.FontColor)
	}
	if body.FontFamily != "Verdana" {
		t.Errorf("body family = %q, want theme minor font", body.FontFamily)
	}

	meta := styleOf(t, tpl, template.SlotMetaPrimary)
	if meta.FontSize != 12 {
		t.Errorf("meta size = %v, want 12 from subTitle", meta.FontSize)
	}
	if meta.FontColor != "#999999" {
		t.Errorf("meta color = %s, want slot default", meta.FontColor)
	}

	caption := styleOf(t, tpl, template.SlotCaption)
	if caption.FontSize != 9 {
		t.Errorf("caption size = %v, want 9 from ftr", caption.FontSize)
	}

	speaker := styleOf(t, tpl, template.SlotMetaSecondary)
	if speaker.FontSize != 13 {
		t.Errorf("speaker size = %v, want meta size + 1", speaker.FontSize)
	}
	if speaker.FontColor != heading.FontColor {
		t.Errorf("speaker color = %s, want heading color", speaker.FontColor)
	}
	if speaker.FontWeight != template.WeightBold {
		t.Errorf("speaker weight = %d, want bold", speaker.FontWeight)
	}
	role := tpl.FindElement(template.SlotMetaSecondary).SecondaryStyle()
	if role == nil {
		t.Fatal("speaker slot has no secondary style")
	}
	if role.FontWeight != template.WeightMedium {
		t.Errorf("role weight = %d, want medium", role.FontWeight)
	}
}

func TestExtractInvalidContainer(t *testing.T) {
	_, err := Extract([]byte("PK\x01"), "broken.pptx")
	if err == nil {
		t.Fatal("expected error for non-zip input")
	}
	if !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("error = %v, want ErrInvalidContainer", err)
	}
}

func TestExtractEmptyArchiveDegrades(t *testing.T) {
	result, err := Extract(buildArchive(t, nil), "empty.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if !result.IsPartial {
		t.Error("empty archive should be partial")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected at least one warning")
	}

	tpl := result.Template
	if err := tpl.Validate(); err != nil {
		t.Fatalf("degraded template invalid: %v", err)
	}
	if tpl.Background.Color != "#FFFFFF" {
		t.Errorf("background = %s, want white default", tpl.Background.Color)
	}

	heading := styleOf(t, tpl, template.SlotHeading)
	if heading.FontSize != 14 || heading.FontColor != template.DefaultColor || heading.FontWeight != template.WeightBold {
		t.Errorf("heading = %+v, want 14pt bold default", heading)
	}
	if heading.FontFamily != template.DefaultFont {
		t.Errorf("heading family = %q, want product default", heading.FontFamily)
	}

	// Speaker derives from the 10pt meta default, clamped up to 11pt.
	speaker := styleOf(t, tpl, template.SlotMetaSecondary)
	if speaker.FontSize != 11 {
		t.Errorf("speaker size = %v, want 11", speaker.FontSize)
	}
}

func TestExtractMalformedThemeDegrades(t *testing.T) {
	data := buildArchive(t, map[string]string{
		"ppt/theme/theme1.xml": "<a:theme><broken",
	})

	result, err := Extract(data, "broken-theme.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !result.IsPartial {
		t.Error("expected partial result")
	}
	found := false
	for _, w := range result.Warnings {
		if w.Stage == "theme" {
			found = true
		}
	}
	if !found {
		t.Errorf("no theme warning in %v", result.Warnings)
	}
}

func TestBackgroundPrecedence(t *testing.T) {
	t.Run("master wins over layouts", func(t *testing.T) {
		data := buildArchive(t, map[string]string{
			"ppt/theme/theme1.xml":              themeFixture,
			"ppt/slideMasters/slideMaster1.xml": slideDoc("sldMaster", solidBg("AAAAAA"), ""),
			"ppt/slideLayouts/slideLayout1.xml": slideDoc("sldLayout", solidBg("BBBBBB"), ""),
		})
		result, err := Extract(data, "t.pptx")
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got := result.Template.Background.Color; got != "#AAAAAA" {
			t.Errorf("background = %s, want master #AAAAAA", got)
		}
	})

	t.Run("first layout with background wins", func(t *testing.T) {
		data := buildArchive(t, map[string]string{
			"ppt/theme/theme1.xml":              themeFixture,
			"ppt/slideMasters/slideMaster1.xml": slideDoc("sldMaster", "", ""),
			"ppt/slideLayouts/slideLayout1.xml": slideDoc("sldLayout", "", ""),
			"ppt/slideLayouts/slideLayout2.xml": slideDoc("sldLayout", solidBg("BBBBBB"), ""),
			"ppt/slideLayouts/slideLayout3.xml": slideDoc("sldLayout", solidBg("CCCCCC"), ""),
		})
		result, err := Extract(data, "t.pptx")
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got := result.Template.Background.Color; got != "#BBBBBB" {
			t.Errorf("background = %s, want first layout #BBBBBB", got)
		}
	})
}

func TestColorModifierApplication(t *testing.T) {
	// lumMod halves the luminance of the literal gray.
	master := slideDoc("sldMaster", "",
		phShape("title", `sz="2000"`, `<a:solidFill><a:srgbClr val="808080"><a:lumMod val="50000"/></a:srgbClr></a:solidFill>`))
	data := buildArchive(t, map[string]string{
		"ppt/theme/theme1.xml":              themeFixture,
		"ppt/slideMasters/slideMaster1.xml": master,
	})

	result, err := Extract(data, "t.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	heading := styleOf(t, result.Template, template.SlotHeading)
	if heading.FontColor != "#404040" {
		t.Errorf("heading color = %s, want #404040 after lumMod", heading.FontColor)
	}
}

func TestRankedFallbackMapping(t *testing.T) {
	// No recognized placeholder roles: slots fill from the size ranking.
	master := slideDoc("sldMaster", "",
		phShape("pic", `sz="4000"`, ``)+
			phShape("tbl", `sz="2000"`, ``)+
			phShape("chart", `sz="1600"`, ``)+
			phShape("media", `sz="800"`, ``))
	data := buildArchive(t, map[string]string{
		"ppt/theme/theme1.xml":              themeFixture,
		"ppt/slideMasters/slideMaster1.xml": master,
	})

	result, err := Extract(data, "t.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	tpl := result.Template

	if got := styleOf(t, tpl, template.SlotHeading).FontSize; got != 40 {
		t.Errorf("heading size = %v, want largest (40)", got)
	}
	if got := styleOf(t, tpl, template.SlotBody).FontSize; got != 20 {
		t.Errorf("body size = %v, want second largest (20)", got)
	}
	if got := styleOf(t, tpl, template.SlotMetaPrimary).FontSize; got != 16 {
		t.Errorf("meta size = %v, want third largest (16)", got)
	}
	if got := styleOf(t, tpl, template.SlotCaption).FontSize; got != 8 {
		t.Errorf("caption size = %v, want smallest (8)", got)
	}
}

func TestRankHelpers(t *testing.T) {
	phs := []PlaceholderStyle{
		{Type: "a", FontSize: 10},
		{Type: "b"},
		{Type: "c", FontSize: 30},
		{Type: "d", FontSize: 10},
		{Type: "e", FontSize: 20},
	}

	ranked := rankBySize(phs)
	if len(ranked) != 4 {
		t.Fatalf("ranked = %d entries, want 4 (unsized dropped)", len(ranked))
	}
	wantOrder := []string{"c", "e", "a", "d"}
	for i, want := range wantOrder {
		if ranked[i].Type != want {
			t.Errorf("ranked[%d] = %s, want %s (stable desc)", i, ranked[i].Type, want)
		}
	}

	if got := rankAt(ranked, 0); got == nil || got.Type != "c" {
		t.Errorf("rankAt(0) = %+v", got)
	}
	if got := rankAt(ranked, -1); got == nil || got.Type != "d" {
		t.Errorf("rankAt(-1) = %+v", got)
	}
	if got := rankAt(ranked, 7); got != nil {
		t.Errorf("rankAt(7) = %+v, want nil", got)
	}
	if got := rankAt(nil, 0); got != nil {
		t.Errorf("rankAt on empty = %+v, want nil", got)
	}
}

func TestSzConversion(t *testing.T) {
	master := slideDoc("sldMaster", "", phShape("title", `sz="2800"`, ``))
	data := buildArchive(t, map[string]string{
		"ppt/theme/theme1.xml":              themeFixture,
		"ppt/slideMasters/slideMaster1.xml": master,
	})

	result, err := Extract(data, "t.pptx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := styleOf(t, result.Template, template.SlotHeading).FontSize; got != 28 {
		t.Errorf("size = %v, want 28 (sz is hundredths of a point)", got)
	}
}

func TestMergeStyles(t *testing.T) {
	master := ExtractedStyles{
		Background: "#AAAAAA",
		Placeholders: []PlaceholderStyle{
			{Type: "title", FontSize: 24, FontColor: "#000000", Bold: true},
			{Type: "body", FontSize: 14},
		},
	}
	layouts := ExtractedStyles{
		Background: "#BBBBBB",
		Placeholders: []PlaceholderStyle{
			{Type: "title", FontSize: 32},
			{Type: "ftr", FontSize: 9},
		},
	}

	merged := mergeStyles(master, layouts)

	if merged.Background != "#AAAAAA" {
		t.Errorf("background = %s, want master value", merged.Background)
	}

	byType := map[string]PlaceholderStyle{}
	for _, ph := range merged.Placeholders {
		byType[ph.Type] = ph
	}

	title := byType["title"]
	if title.FontSize != 32 {
		t.Errorf("title size = %v, want layout overlay 32", title.FontSize)
	}
	if title.FontColor != "#000000" || !title.Bold {
		t.Errorf("title = %+v, layout must not erase master color/bold", title)
	}
	if byType["body"].FontSize != 14 {
		t.Errorf("body = %+v, want untouched master entry", byType["body"])
	}
	if byType["ftr"].FontSize != 9 {
		t.Errorf("ftr = %+v, want layout-only entry added", byType["ftr"])
	}
}
