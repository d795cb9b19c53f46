package rendering

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single HTML to PDF conversion.
const DefaultPDFTimeout = 30 * time.Second

// A4 paper size in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFPrinter converts a complete HTML document into PDF bytes.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromePrinter prints HTML to PDF with headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromePrinter struct {
	Timeout time.Duration
	Verbose bool
}

// NewChromePrinter creates a printer. A zero timeout uses DefaultPDFTimeout.
func NewChromePrinter(timeout time.Duration, verbose bool) *ChromePrinter {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &ChromePrinter{Timeout: timeout, Verbose: verbose}
}

// PrintPDF loads html into a blank page and prints it on A4 with backgrounds.
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	if p.Verbose {
		log.Printf("[PDF] Starting headless browser for %d bytes of HTML", len(html))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, p.Timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{
			Format:  FormatPDF,
			Message: "browser pdf printing failed",
			Cause:   fmt.Errorf("chromedp: %w", err),
		}
	}

	if p.Verbose {
		log.Printf("[PDF] Printed %d bytes", len(pdf))
	}
	return pdf, nil
}
