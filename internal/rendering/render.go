package rendering

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"golang.org/x/sync/errgroup"
)

// Format is an output document format
type Format string

// Supported formats
const (
	FormatHTML Format = "html"
	FormatText Format = "txt"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// maxConcurrentPDF caps concurrent browser instances during ExportAll.
const maxConcurrentPDF = 2

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParseFormat normalizes a format name. Empty input yields HTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatText, FormatDOCX, FormatPDF:
		return f, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// ContentType returns the media type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatDOCX:
		return DOCXContentType
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/html; charset=utf-8"
	}
}

// Document is a rendered output file
type Document struct {
	Format   Format
	Template types.TemplateID
	Data     []byte
}

// ContentType returns the media type of the document.
func (d *Document) ContentType() string {
	return d.Format.ContentType()
}

// FileName builds a download name such as "Jane_Doe_modern_ATS.pdf".
// A blank name yields "resume".
func (d *Document) FileName(fullName string) string {
	base := whitespaceRe.ReplaceAllString(strings.TrimSpace(fullName), "_")
	if base == "" {
		base = "resume"
	}
	if d.Template != "" {
		base += "_" + string(d.Template)
	}
	return base + "_ATS." + string(d.Format)
}

// Renderer dispatches resume data to the renderer for each format.
type Renderer struct {
	pdf PDFPrinter
}

// NewRenderer creates a renderer. A nil printer disables PDF output.
func NewRenderer(pdf PDFPrinter) *Renderer {
	return &Renderer{pdf: pdf}
}

// Render renders data in the given format and template. The template only
// affects HTML and PDF output.
func (r *Renderer) Render(ctx context.Context, data *types.ResumeData, format Format, id types.TemplateID) (*Document, error) {
	doc := &Document{Format: format, Template: id}

	switch format {
	case FormatHTML, FormatPDF:
		html, err := RenderHTML(data, id)
		if err != nil {
			return nil, err
		}
		if format == FormatHTML {
			doc.Data = []byte(html)
			return doc, nil
		}
		pdf, err := r.printPDF(ctx, html)
		if err != nil {
			return nil, err
		}
		doc.Data = pdf
	case FormatText:
		doc.Data = []byte(RenderText(data))
		doc.Template = ""
	case FormatDOCX:
		docx, err := RenderDOCX(data)
		if err != nil {
			return nil, err
		}
		doc.Data = docx
		doc.Template = ""
	default:
		return nil, &RenderError{Format: format, Message: "unsupported format"}
	}
	return doc, nil
}

// RenderCoverLetter renders a cover letter as HTML, plain text or PDF.
func (r *Renderer) RenderCoverLetter(ctx context.Context, data *types.ResumeData, letterText, company, date string, format Format) (*Document, error) {
	doc := &Document{Format: format}

	switch format {
	case FormatText:
		doc.Data = []byte(RenderCoverLetterText(data, letterText, company, date))
	case FormatHTML, FormatPDF:
		html, err := RenderCoverLetterHTML(data, letterText, company, date)
		if err != nil {
			return nil, err
		}
		if format == FormatHTML {
			doc.Data = []byte(html)
			return doc, nil
		}
		pdf, err := r.printPDF(ctx, html)
		if err != nil {
			return nil, err
		}
		doc.Data = pdf
	default:
		return nil, &RenderError{Format: format, Message: "unsupported cover letter format"}
	}
	return doc, nil
}

// ExportAll renders data once per template, concurrently. Results follow
// types.AllTemplates order. The first failure cancels the remaining work.
func (r *Renderer) ExportAll(ctx context.Context, data *types.ResumeData, format Format) ([]*Document, error) {
	templates := types.AllTemplates()
	docs := make([]*Document, len(templates))

	g, ctx := errgroup.WithContext(ctx)
	if format == FormatPDF {
		g.SetLimit(maxConcurrentPDF)
	}
	for i, id := range templates {
		g.Go(func() error {
			doc, err := r.Render(ctx, data, format, id)
			if err != nil {
				return fmt.Errorf("template %s: %w", id, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *Renderer) printPDF(ctx context.Context, html string) ([]byte, error) {
	if r.pdf == nil {
		return nil, &RenderError{Format: FormatPDF, Message: "no printer configured", Cause: ErrPDFUnavailable}
	}
	return r.pdf.PrintPDF(ctx, html)
}
