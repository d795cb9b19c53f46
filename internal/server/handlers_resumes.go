package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeListResponse is the body returned by GET /v1/resumes
type ResumeListResponse struct {
	Resumes []types.ResumeRecord `json:"resumes"`
	Count   int                  `json:"count"`
}

// UploadResponse is the body returned by POST /v1/resumes/{id}/upload
type UploadResponse struct {
	Key         string `json:"key"`
	URI         string `json:"uri"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// handleListResumes returns the caller's newest history entries.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.historyUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), userID, db.NormalizeLimit(limit))
	if err != nil {
		s.writeError(w, fmt.Errorf("list resumes: %w", err))
		return
	}
	if records == nil {
		records = []types.ResumeRecord{}
	}
	s.jsonResponse(w, http.StatusOK, ResumeListResponse{Resumes: records, Count: len(records)})
}

// handleCreateResume saves raw text and form fields as a new history entry.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.historyUser(w, r)
	if !ok {
		return
	}

	var req types.SaveResumeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := newRecord(userID, &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Create(r.Context(), rec); err != nil {
		s.writeError(w, fmt.Errorf("create resume: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusCreated, rec)
}

// handleGetResume returns a single history entry.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleUpdateResume replaces the content of a history entry.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.historyUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.SaveResumeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := newRecord(userID, &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rec.ID = id
	if err := s.store.Update(r.Context(), rec); err != nil {
		s.writeError(w, fmt.Errorf("update resume %s: %w", id, err))
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleDeleteResume removes a history entry.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.historyUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), userID, id); err != nil {
		s.writeError(w, fmt.Errorf("delete resume %s: %w", id, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResumeData rebuilds ResumeData for a saved entry.
func (s *Server) handleResumeData(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, parsing.AssembleRecord(rec))
}

// handleExportResume renders a saved entry. The template defaults to the
// one stored with the entry.
func (s *Server) handleExportResume(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	format, template, err := documentOptions(r, "", string(rec.TemplateID))
	if err != nil {
		s.writeError(w, err)
		return
	}

	data := parsing.AssembleRecord(rec)
	doc, err := s.renderer.Render(r.Context(), data, format, template)
	if err != nil {
		s.writeError(w, fmt.Errorf("export resume %s: %w", rec.ID, err))
		return
	}
	s.writeDocument(w, doc, data.FullName)
}

// handleUploadResume renders a saved entry and stores it in the bucket.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if s.documents == nil {
		s.writeError(w, &ErrUnavailable{Feature: "object storage"})
		return
	}
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}

	format, template, err := documentOptions(r, "pdf", string(rec.TemplateID))
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := s.renderer.Render(r.Context(), parsing.AssembleRecord(rec), format, template)
	if err != nil {
		s.writeError(w, fmt.Errorf("render resume %s: %w", rec.ID, err))
		return
	}

	key := s.documents.Key(rec.UserID, rec.ID, template, string(doc.Format))
	if err := s.documents.Put(r.Context(), key, doc.ContentType(), doc.Data); err != nil {
		s.writeError(w, fmt.Errorf("upload resume %s: %w", rec.ID, err))
		return
	}

	s.jsonResponse(w, http.StatusCreated, UploadResponse{
		Key:         key,
		URI:         s.documents.URI(key),
		ContentType: doc.ContentType(),
		Size:        len(doc.Data),
	})
}

// historyUser returns the authenticated user, reporting an error when
// history is not configured or the context carries no user.
func (s *Server) historyUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "resume history"})
		return uuid.Nil, false
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "invalid resume id"})
		return uuid.Nil, false
	}
	return id, true
}

// loadRecord fetches the {id} entry owned by the caller.
func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*types.ResumeRecord, bool) {
	userID, ok := s.historyUser(w, r)
	if !ok {
		return nil, false
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return nil, false
	}

	rec, err := s.store.Get(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, fmt.Errorf("get resume %s: %w", id, err))
		return nil, false
	}
	if rec == nil {
		s.writeError(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return nil, false
	}
	return rec, true
}

// newRecord converts a save request into a record owned by userID.
func newRecord(userID uuid.UUID, req *types.SaveResumeRequest) (*types.ResumeRecord, error) {
	template, err := types.ParseTemplateID(req.Template)
	if err != nil {
		return nil, &ErrValidation{Field: "template", Message: err.Error()}
	}

	rec := &types.ResumeRecord{
		UserID:      userID,
		JobTitle:    req.JobTitle,
		JobKeywords: parsing.NormalizeKeywords(req.JobKeywords),
		ResumeText:  req.ResumeText,
		TemplateID:  template,
	}
	parsing.RecordSections(rec, req.Fallback)
	return rec, nil
}
