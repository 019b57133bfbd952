package handler

import (
	"net/http"
	"strings"

	"github.com/iconidentify/vidgrab/pkg/ffmpeg"
)

// DownloadsHandler serves merged files from the output directory.
type DownloadsHandler struct {
	files  http.Handler
	prefix string
}

// NewDownloadsHandler serves files under dir at URL paths beginning with
// prefix, e.g. "/downloads/".
func NewDownloadsHandler(dir, prefix string) *DownloadsHandler {
	return &DownloadsHandler{
		files:  http.StripPrefix(prefix, http.FileServer(http.Dir(dir))),
		prefix: prefix,
	}
}

// Serve handles GET <prefix>*. Directory listings and in-progress merge
// files are not exposed.
func (h *DownloadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, h.prefix)
	if name == "" || strings.HasSuffix(name, "/") || ffmpeg.IsPartial(name) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Disposition", "attachment")
	h.files.ServeHTTP(w, r)
}
