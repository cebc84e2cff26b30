package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formpress/pkg/toast"
)

type toastView struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Level   string `json:"level"`
}

// handleListToasts returns the active queue. The dashboard polls this and
// renders whatever is still visible; expiry happens server-side.
func (s *Server) handleListToasts(w http.ResponseWriter, _ *http.Request) {
	active := s.toasts.Active()
	views := make([]toastView, 0, len(active))
	for _, t := range active {
		views = append(views, toastView{ID: t.ID, Message: t.Message, Level: string(t.Level)})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleDismissToast(w http.ResponseWriter, r *http.Request) {
	s.toasts.Dismiss(chi.URLParam(r, "toastID"))
	writeJSON(w, http.StatusOK, map[string]bool{"dismissed": true})
}

func (s *Server) pushToast(message string, level toast.Level) {
	s.toasts.Push(message, level)
}
