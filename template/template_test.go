package template

import (
	"strings"
	"testing"
)

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"#434343", "#434343", true},
		{"434343", "#434343", true},
		{"#abcdef", "#ABCDEF", true},
		{"#FFF", "#FFFFFF", true},
		{"a1c", "#AA11CC", true},
		{"", "", false},
		{"#12345", "", false},
		{"#GGGGGG", "", false},
		{"blue", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeHex(tt.in)
		if ok != tt.wantOK {
			t.Errorf("NormalizeHex(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeHex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeriveSecondary(t *testing.T) {
	primary := FontStyle{
		FontFamily: "Georgia",
		FontSize:   12,
		FontColor:  "#434343",
		FontWeight: WeightBold,
	}

	secondary := DeriveSecondary(primary)

	if secondary.FontFamily != primary.FontFamily {
		t.Errorf("family = %q, want %q", secondary.FontFamily, primary.FontFamily)
	}
	if secondary.FontSize != primary.FontSize {
		t.Errorf("size = %v, want %v", secondary.FontSize, primary.FontSize)
	}
	if secondary.FontWeight != WeightMedium {
		t.Errorf("weight = %d, want %d (bold lowered to medium)", secondary.FontWeight, WeightMedium)
	}
	if secondary.FontColor == primary.FontColor {
		t.Error("color was not lightened")
	}

	// Non-bold weights pass through unchanged.
	primary.FontWeight = WeightRegular
	if got := DeriveSecondary(primary).FontWeight; got != WeightRegular {
		t.Errorf("regular weight = %d, want %d", got, WeightRegular)
	}
}

func TestPresetsValidate(t *testing.T) {
	presets := Presets()
	if len(presets) != 3 {
		t.Fatalf("presets = %d, want 3", len(presets))
	}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s: %v", p.ID, err)
		}
	}
}

func TestByID(t *testing.T) {
	if tpl := ByID("modern-dark"); tpl == nil || tpl.Background.Color != "#1A1A2E" {
		t.Errorf("ByID(modern-dark) = %+v", tpl)
	}
	if tpl := ByID("nope"); tpl != nil {
		t.Errorf("ByID(nope) = %+v, want nil", tpl)
	}
}

func TestNewBlankCustomValidates(t *testing.T) {
	tpl := NewBlankCustom()
	if err := tpl.Validate(); err != nil {
		t.Fatalf("blank custom template invalid: %v", err)
	}
	if !strings.HasPrefix(tpl.ID, "custom-") {
		t.Errorf("id = %q, want custom- prefix", tpl.ID)
	}
}

func TestValidateRejectsBrokenTemplates(t *testing.T) {
	base := func() *Template {
		tpl := *Blank
		tpl.Elements = make([]Element, len(Blank.Elements))
		copy(tpl.Elements, Blank.Elements)
		return &tpl
	}

	t.Run("missing slot", func(t *testing.T) {
		tpl := base()
		tpl.Elements = tpl.Elements[1:]
		if err := tpl.Validate(); err == nil {
			t.Error("expected error for missing slot")
		}
	})

	t.Run("duplicate slot", func(t *testing.T) {
		tpl := base()
		tpl.Elements = append(tpl.Elements, tpl.Elements[0])
		if err := tpl.Validate(); err == nil {
			t.Error("expected error for duplicate slot")
		}
	})

	t.Run("wrong style count", func(t *testing.T) {
		tpl := base()
		for i := range tpl.Elements {
			if tpl.Elements[i].Name == SlotMetaSecondary {
				tpl.Elements[i].Styles = tpl.Elements[i].Styles[:1]
			}
		}
		if err := tpl.Validate(); err == nil {
			t.Error("expected error for single-style meta-secondary")
		}
	})

	t.Run("bad background", func(t *testing.T) {
		tpl := base()
		tpl.Background.Color = "cornflower"
		if err := tpl.Validate(); err == nil {
			t.Error("expected error for invalid background color")
		}
	})
}

func TestFindElementAndStyles(t *testing.T) {
	el := Blank.FindElement(SlotMetaSecondary)
	if el == nil {
		t.Fatal("meta-secondary not found in blank preset")
	}
	if el.PrimaryStyle() == nil || el.SecondaryStyle() == nil {
		t.Error("meta-secondary should carry two styles")
	}

	img := Blank.FindElement(SlotImage)
	if img == nil {
		t.Fatal("image slot not found")
	}
	if img.PrimaryStyle() != nil {
		t.Error("image slot should carry no styles")
	}

	if Blank.FindElement("banner") != nil {
		t.Error("unknown slot resolved")
	}
}

func TestResolveUniqueName(t *testing.T) {
	existing := []string{"Deck", "Deck_1", "Other"}

	if got := ResolveUniqueName("Fresh", existing); got != "Fresh" {
		t.Errorf("got %q, want Fresh", got)
	}
	if got := ResolveUniqueName("Deck", existing); got != "Deck_2" {
		t.Errorf("got %q, want Deck_2", got)
	}
}

func TestIDGenerators(t *testing.T) {
	if id := NewExtractedID(); !strings.HasPrefix(id, "custom-") {
		t.Errorf("extracted id = %q", id)
	}

	a, b := NewBlankID(), NewBlankID()
	if a == b {
		t.Errorf("blank ids collide: %q", a)
	}
}

func TestClampAndSnap(t *testing.T) {
	if got := ClampPosition(-1, -1, 2, 1); got.X != 0 || got.Y != 0 {
		t.Errorf("ClampPosition underflow = %+v", got)
	}
	if got := ClampPosition(20, 20, 2, 1); got.X != SlideWidth-2 || got.Y != SlideHeight-1 {
		t.Errorf("ClampPosition overflow = %+v", got)
	}

	min := MinElementSize[SlotBody]
	if got := ClampSize(0.1, 0.1, min.W, min.H); got.W != min.W || got.H != min.H {
		t.Errorf("ClampSize below minimum = %+v", got)
	}
	if got := ClampSize(99, 99, min.W, min.H); got.W != SlideWidth || got.H != SlideHeight {
		t.Errorf("ClampSize above slide = %+v", got)
	}

	if got := SnapToGrid(1.13, 0.25); got != 1.25 {
		t.Errorf("SnapToGrid = %v, want 1.25", got)
	}
	if got := SnapToGrid(1.13, 0); got != 1.13 {
		t.Errorf("SnapToGrid zero grid = %v, want passthrough", got)
	}
}

func TestLectureLayoutCoversAllSlots(t *testing.T) {
	for _, name := range SlotNames {
		layout, ok := LectureLayout[name]
		if !ok {
			t.Errorf("no layout for slot %q", name)
			continue
		}
		if layout.Size.W <= 0 || layout.Size.H <= 0 {
			t.Errorf("slot %q has empty extent: %+v", name, layout.Size)
		}
		if layout.Position.X+layout.Size.W > SlideWidth+1e-9 {
			t.Errorf("slot %q overflows slide width", name)
		}
		if layout.Position.Y+layout.Size.H > SlideHeight+1e-9 {
			t.Errorf("slot %q overflows slide height", name)
		}
	}
}
