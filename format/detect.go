// Package format provides upload format detection for the server: it tells
// pptx template containers apart from plain-text scripts.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported upload format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates a Microsoft PowerPoint (.pptx) container.
	PPTX
	// Script indicates a plain-text dialogue script.
	Script
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case Script:
		return "Script"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PPTX:
		return ".pptx"
	case Script:
		return ".txt"
	default:
		return ""
	}
}

var scriptExtensions = map[string]bool{
	".txt":    true,
	".md":     true,
	".text":   true,
	".script": true,
}

// Detect determines the format from the filename extension alone.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".pptx":
		return PPTX
	case scriptExtensions[ext]:
		return Script
	default:
		return Unknown
	}
}

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectFromMagic checks leading bytes to determine the format. A zip
// signature alone is not conclusive evidence of a pptx container; callers
// that hold the full content should prefer DetectFromReader.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	if bytes.HasPrefix(data, zipMagic) {
		return PPTX
	}
	if looksLikeText(data) {
		return Script
	}
	return Unknown
}

// looksLikeText reports whether the data is valid UTF-8 without NUL bytes,
// the loose definition of a text script upload.
func looksLikeText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	return utf8.Valid(data)
}

// DetectFromReader inspects the content to determine the format. Unlike
// DetectFromMagic it opens zip input and requires a ppt/ part tree before
// reporting PPTX, so other OOXML containers stay Unknown.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	if looksLikeText(magic) && len(magic) > 0 {
		return Script, nil
	}
	return Unknown, nil
}

// detectZIPFormat inspects a zip archive for the presentation part tree.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/") {
			return PPTX, nil
		}
	}
	return Unknown, nil
}
