package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported resume input format
type Format string

// Supported input formats
const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatHTML     Format = "html"
)

// ErrUnsupportedFormat is returned for file types that cannot be read
var ErrUnsupportedFormat = errors.New("unsupported file format")

var (
	docxBreakRe = regexp.MustCompile(`</w:p>|<w:p\s*/>|<w:br\s*/>|<w:cr\s*/>`)
	docxTabRe   = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat maps a file name to its input format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", "":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// extractText converts raw file bytes to text. pages is only set for PDF input.
func extractText(format Format, data []byte) (text string, pages int, err error) {
	switch format {
	case FormatText, FormatMarkdown:
		return string(data), 0, nil
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		text, err := extractDOCXText(data)
		return text, 0, err
	case FormatHTML:
		text, err := extractHTMLText(string(data), fetch.ResumeSelectors())
		return text, 0, err
	default:
		return "", 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// extractPDFText concatenates the plain text of every non-empty page.
func extractPDFText(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), numPages, nil
}

// extractDOCXText flattens document.xml to text, one line per paragraph.
func extractDOCXText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = docxBreakRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, "\t")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// extractHTMLText converts the main content of a page to markdown, which
// keeps headings and lists in a shape the section parser understands.
func extractHTMLText(page string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	mainHTML, err := fetch.ExtractMainHTML(page, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString(mainHTML)
	if err != nil {
		return "", fmt.Errorf("failed to convert html to markdown: %w", err)
	}
	return md, nil
}
