package rendering

import (
	"bytes"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/jonathan/resume-builder/internal/types"
)

// DOCXContentType is the media type of RenderDOCX output.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const docxFont = "Calibri"

// Font sizes in points.
const (
	docxNameSize    = 18
	docxContactSize = 10
	docxHeadingSize = 12
	docxEntrySize   = 11
	docxBodySize    = 10
)

// RenderDOCX renders data as a single-column Word document using the same
// section layout as RenderText.
func RenderDOCX(data *types.ResumeData) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to create document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	for _, line := range outline(data) {
		addDocxLine(doc, line)
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to write document", Cause: err}
	}
	return buf.Bytes(), nil
}

// addDocxLine appends one outline line as a paragraph.
func addDocxLine(doc *docx.RootDoc, line outlineLine) {
	p := doc.AddEmptyParagraph()

	switch line.Kind {
	case lineName:
		p.Justification(stypes.JustificationCenter)
		docxRun(p, line.Text, docxNameSize).Bold(true)
	case lineContact:
		p.Justification(stypes.JustificationCenter)
		docxRun(p, line.Text, docxContactSize)
	case lineHeading:
		p.Spacing(120, 60)
		bottomRule(p)
		docxRun(p, line.Text, docxHeadingSize).Bold(true)
	case lineEntry:
		docxRun(p, line.Text, docxEntrySize).Bold(true)
	case lineBullet:
		left, hanging := 360, uint64(180)
		p.Indent(&ctypes.Indent{Left: &left, Hanging: &hanging})
		docxRun(p, "• "+line.Text, docxBodySize)
	case lineBreak:
		// blank paragraph between entries
	default:
		if line.Label != "" {
			docxRun(p, line.Label+": ", docxBodySize).Bold(true)
		}
		docxRun(p, line.Text, docxBodySize)
	}
}

func docxRun(p *docx.Paragraph, text string, size uint64) *docx.Run {
	return p.AddText(stripControl(text)).Size(size).Font(docxFont)
}

// bottomRule draws a single line under a paragraph. Paragraph properties
// must already exist.
func bottomRule(p *docx.Paragraph) {
	color, space, size := "auto", "1", 6
	p.GetCT().Property.Border = &ctypes.ParaBorder{
		Bottom: &ctypes.Border{Val: stypes.BorderStyleSingle, Color: &color, Space: &space, Size: &size},
	}
}
