package parser

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
)

// Format is the detected kind of an input file.
type Format string

const (
	FormatDelimited         Format = "delimited"
	FormatSpreadsheet       Format = "spreadsheet"
	FormatLegacySpreadsheet Format = "spreadsheet_legacy"
	FormatHTML              Format = "html"
	FormatPDF               Format = "pdf"
	FormatUnknown           Format = ""
)

// sniffWindow bounds how much of the file content inspection may read.
const sniffWindow = 8 * 1024

var extensionFormats = map[string]Format{
	".csv":  FormatDelimited,
	".tsv":  FormatDelimited,
	".txt":  FormatDelimited,
	".xlsx": FormatSpreadsheet,
	".xls":  FormatLegacySpreadsheet,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".pdf":  FormatPDF,
}

var mediaTypeFormats = map[string]Format{
	"text/csv":                 FormatDelimited,
	"text/tab-separated-values": FormatDelimited,
	"text/plain":               FormatDelimited,
	"text/html":                FormatHTML,
	"application/pdf":          FormatPDF,
	"application/vnd.ms-excel": FormatLegacySpreadsheet,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatSpreadsheet,
}

// Detect determines the file format from, in precedence order, the filename
// extension, the declared media type, and magic-byte inspection of the first
// 8KB. The returned extension is always the raw one from the filename so an
// "unsupported format" error can name what was actually seen.
func Detect(filename, mediaType string, data []byte) (Format, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, ext
	}

	if mt, _, _ := strings.Cut(mediaType, ";"); mt != "" {
		if f, ok := mediaTypeFormats[strings.TrimSpace(strings.ToLower(mt))]; ok {
			return f, ext
		}
	}

	if f := sniffContent(data); f != FormatUnknown {
		return f, ext
	}
	return FormatUnknown, ext
}

func sniffContent(data []byte) Format {
	if len(data) > sniffWindow {
		data = data[:sniffWindow]
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return FormatPDF
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return FormatSpreadsheet
	case bytes.HasPrefix(data, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}):
		return FormatLegacySpreadsheet
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	if bytes.HasPrefix(trimmed, []byte("<")) {
		lower := bytes.ToLower(trimmed)
		if bytes.Contains(lower, []byte("<table")) || bytes.HasPrefix(lower, []byte("<html")) || bytes.HasPrefix(lower, []byte("<!doctype")) {
			return FormatHTML
		}
	}

	if bytes.ContainsAny(data, ",;\t") && bytes.ContainsRune(data, '\n') {
		return FormatDelimited
	}
	return FormatUnknown
}

func supportedExtensions() string {
	exts := make([]string, 0, len(extensionFormats))
	for ext := range extensionFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
