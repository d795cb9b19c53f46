package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// AssembleResponse is the body returned by POST /v1/assemble
type AssembleResponse struct {
	Data    *types.ResumeData     `json:"data"`
	Headers []parsing.HeaderMatch `json:"headers"`
}

// handleAssemble parses raw resume text into ResumeData, falling back to
// the form fields section by section.
func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	var req types.AssembleRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	headers := parsing.LocateHeaders(req.ResumeText)
	if headers == nil {
		headers = []parsing.HeaderMatch{}
	}
	s.jsonResponse(w, http.StatusOK, AssembleResponse{
		Data:    parsing.Assemble(req.ResumeText, req.Fallback),
		Headers: headers,
	})
}

// handleRender renders a document from raw text and fallback fields. The
// format and template query parameters override the body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req types.RenderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	format, template, err := documentOptions(r, req.Format, req.Template)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data := parsing.Assemble(req.ResumeText, req.Fallback)
	doc, err := s.renderer.Render(r.Context(), data, format, template)
	if err != nil {
		s.writeError(w, fmt.Errorf("render resume: %w", err))
		return
	}
	s.writeDocument(w, doc, data.FullName)
}

// handleCoverLetter renders supplied letter text in the cover letter layout.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.CoverLetterRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	format, err := rendering.ParseFormat(firstNonEmpty(r.URL.Query().Get("format"), req.Format))
	if err != nil || format == rendering.FormatDOCX {
		s.writeError(w, &ErrValidation{Field: "format", Message: "cover letters support html, txt and pdf"})
		return
	}

	data := parsing.Assemble(req.ResumeText, req.Fallback)
	doc, err := s.renderer.RenderCoverLetter(r.Context(), data, req.LetterText, req.Company, req.Date, format)
	if err != nil {
		s.writeError(w, fmt.Errorf("render cover letter: %w", err))
		return
	}

	name := "cover_letter"
	if data.FullName != "" {
		name = data.FullName + " cover letter"
	}
	s.writeDocument(w, doc, name)
}

// documentOptions resolves format and template from the query string,
// falling back to the request body values.
func documentOptions(r *http.Request, bodyFormat, bodyTemplate string) (rendering.Format, types.TemplateID, error) {
	q := r.URL.Query()

	format, err := rendering.ParseFormat(firstNonEmpty(q.Get("format"), bodyFormat))
	if err != nil {
		return "", "", &ErrValidation{Field: "format", Message: err.Error()}
	}
	template, err := types.ParseTemplateID(firstNonEmpty(q.Get("template"), bodyTemplate))
	if err != nil {
		return "", "", &ErrValidation{Field: "template", Message: err.Error()}
	}
	return format, template, nil
}

// writeDocument streams a rendered document as an attachment.
func (s *Server) writeDocument(w http.ResponseWriter, doc *rendering.Document, fullName string) {
	w.Header().Set("Content-Type", doc.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	if doc.Format != rendering.FormatHTML {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName(fullName)))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		log.Printf("[server] Error writing document: %v", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
