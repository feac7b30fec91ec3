// Package resume extracts text from uploaded resume documents and suggests
// profile skills from the extracted text.
package resume

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DocxContentType is the MIME type of .docx uploads.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// MaxDocxSize caps accepted resume uploads at 5 MB.
const MaxDocxSize = 5 << 20

// A .docx file is a zip container; the document body lives in
// word/document.xml. Paragraph and break tags become newlines, tabs become
// tabs, everything else is markup to strip.
var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	lineBreak    = regexp.MustCompile(`<w:br[^>]*/?>`)
	tabMark      = regexp.MustCompile(`<w:tab[^>]*/?>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// ExtractDocxText reads a .docx document and returns its plain text.
func ExtractDocxText(r io.ReaderAt, size int64) (string, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open docx container: %w", err)
	}

	for _, file := range zipReader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		xmlFile, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		defer func() { _ = xmlFile.Close() }()

		raw, err := io.ReadAll(xmlFile)
		if err != nil {
			return "", fmt.Errorf("failed to read document.xml: %w", err)
		}

		return documentXMLToText(string(raw)), nil
	}

	return "", fmt.Errorf("document.xml not found: not a docx file")
}

// documentXMLToText strips WordprocessingML markup, preserving paragraph and
// line structure.
func documentXMLToText(xml string) string {
	text := paragraphEnd.ReplaceAllString(xml, "\n")
	text = lineBreak.ReplaceAllString(text, "\n")
	text = tabMark.ReplaceAllString(text, "\t")
	text = xmlTag.ReplaceAllString(text, "")
	text = xmlEntities.Replace(text)

	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
