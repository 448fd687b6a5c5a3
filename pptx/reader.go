// Package pptx extracts a styled slide template from a PPTX (Office Open
// XML Presentation) document. Styling in the container is scattered across
// a theme part, a slide master and up to eleven slide layouts, each able to
// override the levels below it; this package resolves that cascade into a
// single normalized template.
//
// Extraction degrades gracefully: only a broken archive is fatal. A missing
// or malformed theme, master or layout substitutes safe defaults, records a
// warning and marks the result partial, so any valid archive yields a
// usable template.
package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/sanalabo-jp/script-to-slides/template"
)

// ErrInvalidContainer is returned when the input is not a readable zip
// archive. It is the only fatal extraction error.
var ErrInvalidContainer = errors.New("pptx: not a valid container")

// Entry paths consumed from the archive, by convention of the format.
const (
	themePath     = "ppt/theme/theme1.xml"
	masterPath    = "ppt/slideMasters/slideMaster1.xml"
	layoutPathFmt = "ppt/slideLayouts/slideLayout%d.xml"

	// maxLayouts bounds the layout scan; the format addresses layouts by
	// numeric suffix and decks rarely use more than a handful.
	maxLayouts = 11
)

// Warning describes a non-fatal problem encountered during extraction.
type Warning struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return w.Stage + ": " + w.Message
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// Result is the outcome of one extraction. IsPartial is true when any stage
// degraded; Warnings lists what could not be recovered.
type Result struct {
	Template  *template.Template `json:"template"`
	Warnings  []Warning          `json:"warnings"`
	IsPartial bool               `json:"isPartial"`
}

// Extract builds a slide template from the raw bytes of an uploaded pptx
// file. fileName (with extension) becomes the template display name.
func Extract(data []byte, fileName string) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	return extract(zr, fileName), nil
}

// ExtractFile is a convenience wrapper over Extract for on-disk files.
func ExtractFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(data, filepath.Base(path))
}

// extract runs the pipeline: theme, master, layouts, merge, build. Each of
// the three parse stages is independently degradable.
func extract(zr *zip.Reader, fileName string) *Result {
	var warnings []Warning
	partial := false

	degrade := func(stage, msg string) {
		warnings = append(warnings, Warning{Stage: stage, Message: msg})
		partial = true
	}

	th, err := readTheme(zr)
	if err != nil {
		th = defaultTheme()
		degrade("theme", "failed to parse theme, using defaults")
	} else if len(th.ColorScheme) == 0 {
		degrade("theme", "theme color scheme not found, using defaults")
	}

	master, err := readDocumentStyles(zr, masterPath, th)
	if err != nil {
		master = ExtractedStyles{}
		degrade("master", "failed to parse slide master")
	}

	layouts, err := readLayoutStyles(zr, th)
	if err != nil {
		layouts = ExtractedStyles{}
		degrade("layouts", "failed to parse slide layouts")
	}

	merged := mergeStyles(master, layouts)
	tpl := buildTemplate(fileName, merged, th)

	return &Result{Template: tpl, Warnings: warnings, IsPartial: partial}
}

// readEntry parses one archive entry as an XML document. A missing entry
// returns (nil, nil): absence and malformedness propagate differently.
func readEntry(zr *zip.Reader, name string) (*xmlquery.Node, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		doc, err := xmlquery.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		return doc, nil
	}
	return nil, nil
}

// readTheme parses the shared theme part. A missing part yields the default
// theme with an empty color scheme; the orchestrator reports that case
// through the emptiness check rather than an error.
func readTheme(zr *zip.Reader) (Theme, error) {
	doc, err := readEntry(zr, themePath)
	if err != nil {
		return Theme{}, err
	}
	return parseTheme(doc), nil
}

// readDocumentStyles extracts one master or layout part. A missing part
// yields empty styles without an error.
func readDocumentStyles(zr *zip.Reader, path string, th Theme) (ExtractedStyles, error) {
	doc, err := readEntry(zr, path)
	if err != nil {
		return ExtractedStyles{}, err
	}
	if doc == nil {
		return ExtractedStyles{}, nil
	}
	return extractStyles(doc, th), nil
}

// readLayoutStyles scans the candidate layout entries in index order.
// Missing entries are expected and skipped silently; the first layout with
// a background wins. A parse failure aborts the whole stage, mirroring the
// single warning the orchestrator attaches to layout enumeration.
func readLayoutStyles(zr *zip.Reader, th Theme) (ExtractedStyles, error) {
	var all ExtractedStyles
	for i := 1; i <= maxLayouts; i++ {
		doc, err := readEntry(zr, fmt.Sprintf(layoutPathFmt, i))
		if err != nil {
			return ExtractedStyles{}, err
		}
		if doc == nil {
			continue
		}

		styles := extractStyles(doc, th)
		if all.Background == "" {
			all.Background = styles.Background
		}
		all.Placeholders = append(all.Placeholders, styles.Placeholders...)
	}
	return all, nil
}
