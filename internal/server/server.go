// Package server exposes the HTTP surface: the public share-token form and
// intake paths, and the creator API for building, editing, and publishing
// forms.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formpress/pkg/pipeline"
	"github.com/goliatone/go-formpress/pkg/proposal"
	"github.com/goliatone/go-formpress/pkg/render"
	"github.com/goliatone/go-formpress/pkg/store"
	"github.com/goliatone/go-formpress/pkg/toast"
)

// Options wires the server's collaborators. Proposer may be nil; the parse
// endpoint then reports that extraction is not configured.
type Options struct {
	Forms       store.FormStore
	Submissions store.SubmissionStore
	Pipeline    *pipeline.Pipeline
	Renderer    render.Renderer
	Proposer    proposal.Service
	Logger      zerolog.Logger
	BaseURL     string
	Toasts      *toast.Queue
}

// Server handles HTTP requests.
type Server struct {
	forms       store.FormStore
	submissions store.SubmissionStore
	pipeline    *pipeline.Pipeline
	renderer    render.Renderer
	proposer    proposal.Service
	logger      zerolog.Logger
	baseURL     string
	toasts      *toast.Queue
	mux         *chi.Mux
}

// New builds the server and its routes.
func New(opts Options) *Server {
	s := &Server{
		forms:       opts.Forms,
		submissions: opts.Submissions,
		pipeline:    opts.Pipeline,
		renderer:    opts.Renderer,
		proposer:    opts.Proposer,
		logger:      opts.Logger,
		baseURL:     opts.BaseURL,
		toasts:      opts.Toasts,
	}
	if s.toasts == nil {
		s.toasts = toast.NewQueue()
	}

	r := chi.NewRouter()
	r.Use(recovery(s.logger))
	r.Use(requestLogger(s.logger))

	r.Get("/f/{token}", s.handleRenderForm)
	r.Post("/api/submissions", s.handleCreateSubmission)

	r.Route("/api/forms", func(r chi.Router) {
		r.Post("/", s.handleCreateForm)
		r.Get("/", s.handleListForms)
		r.Get("/{formID}", s.handleGetForm)
		r.Delete("/{formID}", s.handleDeleteForm)
		r.Post("/{formID}/publish", s.handlePublishForm)
		r.Get("/{formID}/openapi", s.handleExportOpenAPI)
		r.Get("/{formID}/submissions", s.handleListSubmissions)

		r.Put("/{formID}/fields", s.handleReplaceFields)
		r.Post("/{formID}/fields", s.handleAddField)
		r.Patch("/{formID}/fields/{index}", s.handleUpdateField)
		r.Delete("/{formID}/fields/{index}", s.handleRemoveField)
		r.Post("/{formID}/fields/{index}/move", s.handleMoveField)
	})

	r.Post("/api/parse", s.handleParse)

	r.Get("/api/toasts", s.handleListToasts)
	r.Delete("/api/toasts/{toastID}", s.handleDismissToast)

	s.mux = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
