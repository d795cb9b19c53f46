package rendering

import (
	"errors"
	"fmt"
)

// ErrPDFUnavailable is the cause of a RenderError when no PDFPrinter is set.
var ErrPDFUnavailable = errors.New("pdf output is not available")

// TemplateError reports a failure parsing or executing one of the embedded
// HTML templates. Name is empty when the template set itself failed to parse.
type TemplateError struct {
	Name    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	prefix := "template"
	if e.Name != "" {
		prefix = "template " + e.Name
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError reports a failure producing a document in Format.
type RenderError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	prefix := "render"
	if e.Format != "" {
		prefix = "render " + string(e.Format)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
