package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/pipeline"
	"github.com/goliatone/go-formpress/pkg/render"
)

// respondableField is the public projection of a field: everything a
// respondent needs, nothing the creator keeps to themselves.
type respondableField struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// handleRenderForm serves the fillable form. JSON clients get the
// respondable field list; everything else gets the rendered HTML surface.
// Draft and unknown tokens are both 404, so draft content never leaks.
func (s *Server) handleRenderForm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	schema, err := s.forms.GetFormByShareToken(r.Context(), token)
	if err != nil || !model.IsRespondable(schema) {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		fields := make([]respondableField, 0, len(schema.Fields))
		for _, f := range schema.Fields {
			fields = append(fields, respondableField{
				ID:          f.ID,
				Label:       f.Label,
				Type:        string(f.Type),
				Placeholder: f.Placeholder,
				Required:    f.Required,
				Options:     f.Options,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"title":       schema.Title,
			"description": schema.Description,
			"fields":      fields,
		})
		return
	}

	page, err := s.renderer.Render(r.Context(), schema, render.RenderOptions{
		SubmitURL: "/api/submissions?formId=" + schema.ShareToken,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("token", token).Msg("render form")
		writeError(w, http.StatusInternalServerError, "could not render form")
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

type submissionRequest struct {
	FormID          string            `json:"formId"`
	RespondentName  string            `json:"respondentName"`
	RespondentEmail string            `json:"respondentEmail"`
	Values          map[string]string `json:"values"`
}

// handleCreateSubmission feeds one attempt through the pipeline. It accepts
// the JSON intake shape and plain form posts from the rendered HTML.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pipeline.Process(r.Context(), pipeline.Request{
		ShareToken:      req.FormID,
		RespondentName:  req.RespondentName,
		RespondentEmail: req.RespondentEmail,
		Values:          req.Values,
	})

	var verr *pipeline.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"submissionId": result.SubmissionID,
		})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, pipeline.ErrNotFound):
		writeError(w, http.StatusNotFound, "form not found")
	case errors.Is(err, pipeline.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad request")
	default:
		writeError(w, http.StatusInternalServerError, "submission failed")
	}
}

func decodeSubmission(r *http.Request) (submissionRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req submissionRequest
		if err := readJSON(r, &req); err != nil {
			return submissionRequest{}, err
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return submissionRequest{}, err
	}
	req := submissionRequest{
		FormID:          r.URL.Query().Get("formId"),
		RespondentName:  r.PostForm.Get(render.KeyName),
		RespondentEmail: r.PostForm.Get(render.KeyEmail),
		Values:          map[string]string{},
	}
	for key, values := range r.PostForm {
		if key == render.KeyName || key == render.KeyEmail || len(values) == 0 {
			continue
		}
		req.Values[key] = values[len(values)-1]
	}
	return req, nil
}
