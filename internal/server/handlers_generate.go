package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// GenerateResponse is the body returned by POST /v1/generate
type GenerateResponse struct {
	Result *generation.Result  `json:"result"`
	Data   *types.ResumeData   `json:"data,omitempty"`
	Record *types.ResumeRecord `json:"record,omitempty"`
}

// AutofillResponse is the body returned by POST /v1/autofill
type AutofillResponse struct {
	Contact types.Contact `json:"contact"`
	Source  string        `json:"source"`
}

// Autofill sources
const (
	autofillSourceText = "text"
	autofillSourceLLM  = "llm"
)

// handleGenerate drafts a resume or cover letter. A generated resume is
// parsed back into ResumeData and, when requested, saved to history.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.writeError(w, &ErrUnavailable{Feature: "generation"})
		return
	}

	var req types.GenerateRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	saving := req.Save && req.Kind == types.GenerateResume
	if saving && s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "resume history"})
		return
	}
	template, err := types.ParseTemplateID(req.Template)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "template", Message: err.Error()})
		return
	}

	result, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := GenerateResponse{Result: result}
	if req.Kind == types.GenerateResume {
		resp.Data = parsing.Assemble(result.Content, req.Fallback)
	}

	if saving {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		keywords := req.JobKeywords
		if len(keywords) == 0 && req.JobDescription != "" {
			extracted, err := s.generator.ExtractKeywords(r.Context(), req.JobDescription)
			if err != nil {
				log.Printf("[server] Keyword extraction failed, saving without keywords: %v", err)
			}
			keywords = extracted
		}

		rec, err := newRecord(userID, &types.SaveResumeRequest{
			JobTitle:    req.JobTitle,
			JobKeywords: keywords,
			ResumeText:  result.Content,
			Fallback:    req.Fallback,
			Template:    string(template),
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		if err := s.store.Create(r.Context(), rec); err != nil {
			s.writeError(w, fmt.Errorf("save generated resume: %w", err))
			return
		}
		resp.Record = rec
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAutofill fills blank contact fields from pasted profile text.
// Fields the caller already entered are never overwritten.
func (s *Server) handleAutofill(w http.ResponseWriter, r *http.Request) {
	var req types.AutofillRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	candidate := parsing.ExtractContact(req.Text)
	source := autofillSourceText

	if s.generator != nil {
		extracted, err := s.generator.ExtractContact(r.Context(), req.Text)
		if err != nil {
			log.Printf("[server] Contact extraction failed, using text scan: %v", err)
		} else {
			candidate = parsing.ResolveContact(extracted, candidate)
			source = autofillSourceLLM
		}
	}

	s.jsonResponse(w, http.StatusOK, AutofillResponse{
		Contact: parsing.ResolveContact(req.Current, candidate),
		Source:  source,
	})
}
