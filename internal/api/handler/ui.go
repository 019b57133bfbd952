package handler

import (
	"net/http"

	"github.com/iconidentify/vidgrab/pkg/ui"
)

// UIHandler serves the web UI.
type UIHandler struct {
	assets http.Handler
}

// NewUIHandler creates a new UI handler.
func NewUIHandler() *UIHandler {
	return &UIHandler{
		assets: http.FileServer(http.FS(ui.Assets())),
	}
}

// Index serves the main page.
func (h *UIHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(ui.IndexHTML)
}

// Assets serves script and stylesheet files.
func (h *UIHandler) Assets(w http.ResponseWriter, r *http.Request) {
	h.assets.ServeHTTP(w, r)
}
