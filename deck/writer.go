// Package deck writes a PPTX presentation from a parsed script and a slide
// template. The deck opens with a cover slide built from the script front
// matter, then carries one content slide per dialogue line, every text box
// styled inline from the template's semantic slots.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/sanalabo-jp/script-to-slides/script"
	"github.com/sanalabo-jp/script-to-slides/template"
)

// Generate renders the deck and returns the raw bytes of the pptx file.
// The template must carry the six semantic slots; Validate reports which
// invariant a malformed template breaks before any part is written.
func Generate(result *script.Result, tpl *template.Template) ([]byte, error) {
	if result == nil || len(result.Slides) == 0 {
		return nil, fmt.Errorf("deck: no slides to generate")
	}
	if tpl == nil {
		return nil, fmt.Errorf("deck: nil template")
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("deck: invalid template: %w", err)
	}

	slides := make([]xmlSlide, 0, len(result.Slides)+1)
	slides = append(slides, buildCoverSlide(result, tpl))
	for _, line := range result.Slides {
		slides = append(slides, buildContentSlide(line, tpl))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := writeParts(zw, result, slides); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("deck: closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

func writeParts(zw *zip.Writer, result *script.Result, slides []xmlSlide) error {
	n := len(slides)

	title := result.FrontMatter.Topic
	if title == "" {
		title = "Presentation"
	}
	subject := result.FrontMatter.Topic
	if subject == "" {
		subject = "Auto-generated presentation"
	}
	created := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	if err := writeContentTypes(zw, n); err != nil {
		return err
	}
	if err := writeRootRels(zw); err != nil {
		return err
	}
	if err := writeCoreProperties(zw, title, subject, created); err != nil {
		return err
	}
	if err := writeAppProperties(zw, n); err != nil {
		return err
	}
	if err := writePresentation(zw, n); err != nil {
		return err
	}
	if err := writePresentationRels(zw, n); err != nil {
		return err
	}
	if err := writeRawXMLToZip(zw, "ppt/presProps.xml", presPropsXML); err != nil {
		return err
	}
	if err := writeRawXMLToZip(zw, "ppt/viewProps.xml", viewPropsXML); err != nil {
		return err
	}
	if err := writeRawXMLToZip(zw, "ppt/theme/theme1.xml", themeXML); err != nil {
		return err
	}
	if err := writeRawXMLToZip(zw, "ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	if err := writeMasterRels(zw); err != nil {
		return err
	}
	if err := writeRawXMLToZip(zw, "ppt/slideLayouts/slideLayout1.xml", slideLayoutXML); err != nil {
		return err
	}
	if err := writeLayoutRels(zw); err != nil {
		return err
	}

	for i, slide := range slides {
		path := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := writeXMLToZip(zw, path, slide); err != nil {
			return err
		}
		if err := writeSlideRels(zw, i+1); err != nil {
			return err
		}
	}
	return nil
}
