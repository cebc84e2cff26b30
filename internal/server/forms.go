package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formpress/pkg/editor"
	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/openapi"
	"github.com/goliatone/go-formpress/pkg/store"
	"github.com/goliatone/go-formpress/pkg/toast"
)

// creatorHeader identifies the acting creator. There is no account system
// here; deployments front this API with their own auth and set the header.
const creatorHeader = "X-Creator-ID"

func creatorID(r *http.Request) string {
	if id := r.Header.Get(creatorHeader); id != "" {
		return id
	}
	return "local"
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := model.NewDraft(req.Title, req.Description)
	draft.CreatorID = creatorID(r)

	created, err := s.forms.CreateForm(r.Context(), draft)
	if err != nil {
		s.logger.Error().Err(err).Msg("create form")
		writeError(w, http.StatusInternalServerError, "could not create form")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := s.forms.ListForms(r.Context(), creatorID(r))
	if err != nil {
		s.logger.Error().Err(err).Msg("list forms")
		writeError(w, http.StatusInternalServerError, "could not list forms")
		return
	}
	writeJSON(w, http.StatusOK, forms)
}

func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "formID")
	if err := s.forms.DeleteForm(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handlePublishForm freezes a draft and mints its share token. Publishing an
// already-published form returns it unchanged.
func (s *Server) handlePublishForm(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return
	}

	published, err := model.Publish(schema)
	if err != nil {
		if errors.Is(err, model.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, "form title is required")
			return
		}
		s.logger.Error().Err(err).Str("form", schema.ID).Msg("publish form")
		writeError(w, http.StatusInternalServerError, "could not publish form")
		return
	}

	saved, err := s.forms.UpdateForm(r.Context(), published)
	if err != nil {
		s.logger.Error().Err(err).Str("form", schema.ID).Msg("save published form")
		writeError(w, http.StatusInternalServerError, "could not publish form")
		return
	}

	s.pushToast("Form published", toast.LevelSuccess)
	writeJSON(w, http.StatusOK, map[string]any{
		"form":     saved,
		"shareUrl": s.baseURL + "/f/" + saved.ShareToken,
	})
}

func (s *Server) handleExportOpenAPI(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return
	}

	doc, err := openapi.Export(schema)
	if err != nil {
		if errors.Is(err, openapi.ErrNotPublished) {
			writeError(w, http.StatusConflict, "form is not published")
			return
		}
		s.logger.Error().Err(err).Str("form", schema.ID).Msg("export openapi")
		writeError(w, http.StatusInternalServerError, "could not export contract")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return
	}

	submissions, err := s.submissions.ListSubmissions(r.Context(), schema.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("form", schema.ID).Msg("list submissions")
		writeError(w, http.StatusInternalServerError, "could not list submissions")
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

// handleReplaceFields saves the complete field list, the editor's replace-all
// persistence model. Every incoming field passes through construction.
func (s *Server) handleReplaceFields(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return
	}

	var inputs []model.FieldInput
	if err := readJSON(r, &inputs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := make([]model.FormField, 0, len(inputs))
	for i, in := range inputs {
		field, err := model.NewField(in, i)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		fields = append(fields, field)
	}

	s.saveFields(w, r, schema.ID, fields)
}

func (s *Server) handleAddField(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return
	}
	s.saveFields(w, r, schema.ID, editor.AddField(schema.Fields))
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	schema, index, ok := s.loadFormField(w, r)
	if !ok {
		return
	}

	var req struct {
		Label       *string  `json:"label"`
		Type        *string  `json:"type"`
		Placeholder *string  `json:"placeholder"`
		Required    *bool    `json:"required"`
		Options     []string `json:"options"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := editor.FieldPatch{
		Label:       req.Label,
		Placeholder: req.Placeholder,
		Required:    req.Required,
		Options:     req.Options,
	}
	if req.Type != nil {
		t := model.FieldType(*req.Type)
		patch.Type = &t
	}

	fields, err := editor.UpdateField(schema.Fields, index, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveFields(w, r, schema.ID, fields)
}

func (s *Server) handleRemoveField(w http.ResponseWriter, r *http.Request) {
	schema, index, ok := s.loadFormField(w, r)
	if !ok {
		return
	}

	fields, err := editor.RemoveField(schema.Fields, index)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveFields(w, r, schema.ID, fields)
}

func (s *Server) handleMoveField(w http.ResponseWriter, r *http.Request) {
	schema, index, ok := s.loadFormField(w, r)
	if !ok {
		return
	}

	var req struct {
		To int `json:"to"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := editor.MoveField(schema.Fields, index, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveFields(w, r, schema.ID, fields)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if s.proposer == nil {
		writeError(w, http.StatusNotImplemented, "schema extraction is not configured")
		return
	}

	var req struct {
		FileURL  string `json:"fileUrl"`
		MimeType string `json:"mimeType"`
	}
	if err := readJSON(r, &req); err != nil || req.FileURL == "" {
		writeError(w, http.StatusBadRequest, "fileUrl is required")
		return
	}

	prop, err := s.proposer.Propose(r.Context(), req.FileURL, req.MimeType)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", req.FileURL).Msg("schema proposal failed")
		writeError(w, http.StatusBadGateway, "could not extract form structure")
		return
	}
	writeJSON(w, http.StatusOK, prop)
}

func (s *Server) loadForm(w http.ResponseWriter, r *http.Request) (model.FormSchema, bool) {
	id := chi.URLParam(r, "formID")
	schema, err := s.forms.GetForm(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "form not found")
		} else {
			s.logger.Error().Err(err).Str("form", id).Msg("load form")
			writeError(w, http.StatusInternalServerError, "could not load form")
		}
		return model.FormSchema{}, false
	}
	return schema, true
}

func (s *Server) loadFormField(w http.ResponseWriter, r *http.Request) (model.FormSchema, int, bool) {
	schema, ok := s.loadForm(w, r)
	if !ok {
		return model.FormSchema{}, 0, false
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "field index must be an integer")
		return model.FormSchema{}, 0, false
	}
	return schema, index, true
}

func (s *Server) saveFields(w http.ResponseWriter, r *http.Request, formID string, fields []model.FormField) {
	saved, err := s.forms.SaveFields(r.Context(), formID, fields)
	if err != nil {
		s.logger.Error().Err(err).Str("form", formID).Msg("save fields")
		writeError(w, http.StatusInternalServerError, "could not save fields")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
