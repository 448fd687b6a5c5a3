package deck

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/sanalabo-jp/script-to-slides/script"
	"github.com/sanalabo-jp/script-to-slides/template"
)

// Geometry of the widescreen deck, in EMUs (914400 per inch).
const (
	emuPerInch     = 914400
	slideWidthEMU  = 12192000 // 13.33in
	slideHeightEMU = 6858000  // 7.5in
)

func inchToEMU(in float64) int64 {
	return int64(in*emuPerInch + 0.5)
}

// szHundredths converts a point size to the hundredths-of-a-point unit the
// format stores in the sz attribute.
func szHundredths(pt float64) int {
	return int(pt*100 + 0.5)
}

// stripHash drops the leading '#' of a hex color; the format stores bare
// RRGGBB values.
func stripHash(color string) string {
	return strings.TrimPrefix(color, "#")
}

// --- Slide part model ---

type xmlSlide struct {
	XMLName   xml.Name     `xml:"p:sld"`
	XmlnsA    string       `xml:"xmlns:a,attr"`
	XmlnsR    string       `xml:"xmlns:r,attr"`
	XmlnsP    string       `xml:"xmlns:p,attr"`
	CSld      xmlCSld      `xml:"p:cSld"`
	ClrMapOvr xmlClrMapOvr `xml:"p:clrMapOvr"`
}

type xmlCSld struct {
	Bg     *xmlBackground `xml:"p:bg,omitempty"`
	SpTree xmlShapeTree   `xml:"p:spTree"`
}

type xmlBackground struct {
	BgPr xmlBgPr `xml:"p:bgPr"`
}

type xmlBgPr struct {
	Fill      xmlSolidFill `xml:"a:solidFill"`
	EffectLst struct{}     `xml:"a:effectLst"`
}

type xmlSolidFill struct {
	Color xmlSrgbClr `xml:"a:srgbClr"`
}

type xmlSrgbClr struct {
	Val string `xml:"val,attr"`
}

type xmlClrMapOvr struct {
	MasterClrMapping struct{} `xml:"a:masterClrMapping"`
}

type xmlShapeTree struct {
	NvGrpSpPr xmlNvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   struct{}     `xml:"p:grpSpPr"`
	Shapes    []xmlShape   `xml:"p:sp"`
}

type xmlNvGrpSpPr struct {
	CNvPr      xmlCNvPr `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type xmlCNvPr struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type xmlShape struct {
	NvSpPr xmlNvSpPr `xml:"p:nvSpPr"`
	SpPr   xmlSpPr   `xml:"p:spPr"`
	TxBody xmlTxBody `xml:"p:txBody"`
}

type xmlNvSpPr struct {
	CNvPr   xmlCNvPr   `xml:"p:cNvPr"`
	CNvSpPr xmlCNvSpPr `xml:"p:cNvSpPr"`
	NvPr    struct{}   `xml:"p:nvPr"`
}

type xmlCNvSpPr struct {
	TxBox string `xml:"txBox,attr,omitempty"`
}

type xmlSpPr struct {
	Xfrm     xmlXfrm     `xml:"a:xfrm"`
	PrstGeom xmlPrstGeom `xml:"a:prstGeom"`
}

type xmlXfrm struct {
	Off xmlOffset `xml:"a:off"`
	Ext xmlExtent `xml:"a:ext"`
}

type xmlOffset struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type xmlExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xmlPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type xmlTxBody struct {
	BodyPr     xmlBodyPr      `xml:"a:bodyPr"`
	LstStyle   struct{}       `xml:"a:lstStyle"`
	Paragraphs []xmlParagraph `xml:"a:p"`
}

type xmlBodyPr struct {
	Wrap   string `xml:"wrap,attr,omitempty"`
	Anchor string `xml:"anchor,attr,omitempty"`
}

type xmlParagraph struct {
	PPr  *xmlPPr  `xml:"a:pPr,omitempty"`
	Runs []xmlRun `xml:"a:r"`
}

type xmlPPr struct {
	Align string    `xml:"algn,attr,omitempty"`
	LnSpc *xmlLnSpc `xml:"a:lnSpc,omitempty"`
}

type xmlLnSpc struct {
	SpcPts xmlSpcPts `xml:"a:spcPts"`
}

type xmlSpcPts struct {
	Val int `xml:"val,attr"`
}

type xmlRun struct {
	RPr xmlRunProps `xml:"a:rPr"`
	T   string      `xml:"a:t"`
}

type xmlRunProps struct {
	Lang  string        `xml:"lang,attr"`
	Sz    int           `xml:"sz,attr,omitempty"`
	B     string        `xml:"b,attr,omitempty"`
	I     string        `xml:"i,attr,omitempty"`
	Fill  *xmlSolidFill `xml:"a:solidFill,omitempty"`
	Latin *xmlTypeface  `xml:"a:latin,omitempty"`
}

type xmlTypeface struct {
	Typeface string `xml:"typeface,attr"`
}

// --- Slide assembly ---

// slideBuilder accumulates text boxes on one slide, numbering shape IDs
// after the group shape at ID 1.
type slideBuilder struct {
	slide  xmlSlide
	nextID int
}

func newSlideBuilder(background string) *slideBuilder {
	b := &slideBuilder{nextID: 2}
	b.slide = xmlSlide{
		XmlnsA: nsDrawingML,
		XmlnsR: nsOfficeDocRels,
		XmlnsP: nsPresentationML,
		CSld: xmlCSld{
			SpTree: xmlShapeTree{
				NvGrpSpPr: xmlNvGrpSpPr{CNvPr: xmlCNvPr{ID: 1, Name: ""}},
			},
		},
	}
	if background != "" {
		b.slide.CSld.Bg = &xmlBackground{
			BgPr: xmlBgPr{Fill: xmlSolidFill{Color: xmlSrgbClr{Val: stripHash(background)}}},
		}
	}
	return b
}

// textOptions controls one text box beyond its style and geometry.
type textOptions struct {
	align         string // "ctr" or "" for left
	anchorTop     bool
	wrap          bool
	italic        bool
	forceBold     bool
	lineSpacingPt int
}

func runProps(style template.FontStyle, opts textOptions) xmlRunProps {
	rpr := xmlRunProps{
		Lang: "en-US",
		Sz:   szHundredths(style.FontSize),
	}
	if style.FontWeight >= template.WeightBold || opts.forceBold {
		rpr.B = "1"
	}
	if opts.italic {
		rpr.I = "1"
	}
	if style.FontColor != "" {
		rpr.Fill = &xmlSolidFill{Color: xmlSrgbClr{Val: stripHash(style.FontColor)}}
	}
	if style.FontFamily != "" {
		rpr.Latin = &xmlTypeface{Typeface: style.FontFamily}
	}
	return rpr
}

func textShape(id int, name string, pos template.Position, size template.Size, paragraphs []xmlParagraph, opts textOptions) xmlShape {
	bodyPr := xmlBodyPr{}
	if opts.wrap {
		bodyPr.Wrap = "square"
	}
	if opts.anchorTop {
		bodyPr.Anchor = "t"
	}
	return xmlShape{
		NvSpPr: xmlNvSpPr{
			CNvPr:   xmlCNvPr{ID: id, Name: name},
			CNvSpPr: xmlCNvSpPr{TxBox: "1"},
		},
		SpPr: xmlSpPr{
			Xfrm: xmlXfrm{
				Off: xmlOffset{X: inchToEMU(pos.X), Y: inchToEMU(pos.Y)},
				Ext: xmlExtent{CX: inchToEMU(size.W), CY: inchToEMU(size.H)},
			},
			PrstGeom: xmlPrstGeom{Prst: "rect"},
		},
		TxBody: xmlTxBody{
			BodyPr:     bodyPr,
			Paragraphs: paragraphs,
		},
	}
}

// addText places a single-run text box.
func (b *slideBuilder) addText(name, text string, pos template.Position, size template.Size, style template.FontStyle, opts textOptions) {
	var pPr *xmlPPr
	if opts.align != "" || opts.lineSpacingPt > 0 {
		pPr = &xmlPPr{Align: opts.align}
		if opts.lineSpacingPt > 0 {
			pPr.LnSpc = &xmlLnSpc{SpcPts: xmlSpcPts{Val: opts.lineSpacingPt * 100}}
		}
	}
	paragraphs := []xmlParagraph{{
		PPr:  pPr,
		Runs: []xmlRun{{RPr: runProps(style, opts), T: text}},
	}}
	b.slide.CSld.SpTree.Shapes = append(b.slide.CSld.SpTree.Shapes,
		textShape(b.nextID, name, pos, size, paragraphs, opts))
	b.nextID++
}

// addRuns places a text box whose single paragraph holds several styled runs.
func (b *slideBuilder) addRuns(name string, runs []xmlRun, pos template.Position, size template.Size) {
	paragraphs := []xmlParagraph{{Runs: runs}}
	b.slide.CSld.SpTree.Shapes = append(b.slide.CSld.SpTree.Shapes,
		textShape(b.nextID, name, pos, size, paragraphs, textOptions{}))
	b.nextID++
}

// --- Cover slide ---

// buildCoverSlide opens the deck: topic as an enlarged centered title, then
// categories, the speaker roster and the slide count, all centered.
func buildCoverSlide(result *script.Result, tpl *template.Template) xmlSlide {
	b := newSlideBuilder(tpl.Background.Color)

	topic := result.FrontMatter.Topic
	if topic == "" {
		topic = "Presentation"
	}

	if s := slotStyle(tpl, template.SlotHeading); s != nil {
		title := *s
		title.FontSize = s.FontSize * 2.5
		b.addText("Title", topic,
			template.Position{X: 0.8, Y: 1.8}, template.Size{W: 11.7, H: 1.2},
			title, textOptions{align: "ctr", forceBold: true})
	}

	if len(result.FrontMatter.Categories) > 0 {
		if s := slotStyle(tpl, template.SlotMetaPrimary); s != nil {
			b.addText("Categories", strings.Join(result.FrontMatter.Categories, " · "),
				template.Position{X: 0.8, Y: 3.2}, template.Size{W: 11.7, H: 0.5},
				*s, textOptions{align: "ctr"})
		}
	}

	if len(result.Speakers) > 0 {
		if s := slotStyle(tpl, template.SlotBody); s != nil {
			names := make([]string, len(result.Speakers))
			for i, sp := range result.Speakers {
				names[i] = sp.Name + " [" + sp.Role + "]"
			}
			b.addText("Speakers", strings.Join(names, ", "),
				template.Position{X: 0.8, Y: 4.2}, template.Size{W: 11.7, H: 0.6},
				*s, textOptions{align: "ctr"})
		}
	}

	if s := slotStyle(tpl, template.SlotCaption); s != nil {
		b.addText("SlideCount", fmt.Sprintf("%d slides", len(result.Slides)),
			template.Position{X: 0.8, Y: 5.2}, template.Size{W: 11.7, H: 0.4},
			*s, textOptions{align: "ctr", italic: true})
	}

	return b.slide
}

// slotStyle is the cover slide's lookup: the named element's first style,
// or nil when the slot is absent or unstyled.
func slotStyle(tpl *template.Template, slot string) *template.FontStyle {
	el := tpl.FindElement(slot)
	if el == nil {
		return nil
	}
	return el.PrimaryStyle()
}

// --- Content slide ---

// buildContentSlide renders one dialogue line. Template elements render in
// zIndex order so later boxes sit above earlier ones; each semantic slot has
// its own renderer and empty payloads skip their box entirely.
func buildContentSlide(data script.Slide, tpl *template.Template) xmlSlide {
	b := newSlideBuilder(tpl.Background.Color)

	sorted := make([]template.Element, len(tpl.Elements))
	copy(sorted, tpl.Elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Layout.ZIndex < sorted[j].Layout.ZIndex
	})

	for _, el := range sorted {
		switch el.Name {
		case template.SlotMetaPrimary:
			renderMetadata(b, el, data)
		case template.SlotMetaSecondary:
			renderSpeaker(b, el, data)
		case template.SlotHeading:
			renderHeading(b, el, data)
		case template.SlotBody:
			renderDialogue(b, el, data)
		case template.SlotImage:
			// Image lookup is not wired yet; an empty payload renders nothing.
		case template.SlotCaption:
			renderDetail(b, el, data)
		}
	}

	return b.slide
}

// renderMetadata joins the line's metadata pairs into one row.
func renderMetadata(b *slideBuilder, el template.Element, data script.Slide) {
	if len(data.Metadata) == 0 || len(el.Styles) == 0 {
		return
	}

	keys := make([]string, 0, len(data.Metadata))
	for k := range data.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " · " + data.Metadata[k]
	}

	b.addText("Metadata", strings.Join(parts, ", "),
		el.Layout.Position, el.Layout.Size, el.Styles[0], textOptions{})
}

// renderSpeaker emits the dual-run speaker box: the name in the primary
// style, the role after it in the derived secondary style.
func renderSpeaker(b *slideBuilder, el template.Element, data script.Slide) {
	if len(el.Styles) == 0 {
		return
	}
	primary := el.Styles[0]
	secondary := primary
	if len(el.Styles) > 1 {
		secondary = el.Styles[1]
	}

	runs := []xmlRun{
		{RPr: runProps(primary, textOptions{}), T: data.Speaker.Name},
		{RPr: runProps(secondary, textOptions{}), T: " " + data.Speaker.Role},
	}
	b.addRuns("Speaker", runs, el.Layout.Position, el.Layout.Size)
}

func renderHeading(b *slideBuilder, el template.Element, data script.Slide) {
	if data.Summary == "" || len(el.Styles) == 0 {
		return
	}
	b.addText("Heading", data.Summary,
		el.Layout.Position, el.Layout.Size, el.Styles[0], textOptions{})
}

func renderDialogue(b *slideBuilder, el template.Element, data script.Slide) {
	if len(el.Styles) == 0 {
		return
	}
	b.addText("Dialogue", data.Context,
		el.Layout.Position, el.Layout.Size, el.Styles[0],
		textOptions{anchorTop: true, wrap: true, lineSpacingPt: 28})
}

func renderDetail(b *slideBuilder, el template.Element, data script.Slide) {
	if data.Detail == "" || len(el.Styles) == 0 {
		return
	}
	b.addText("Detail", data.Detail,
		el.Layout.Position, el.Layout.Size, el.Styles[0], textOptions{})
}
