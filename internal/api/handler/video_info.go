package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// Client-facing error messages. Tool diagnostics are logged, never returned.
const (
	msgMissingURL  = "YouTube URL is required."
	msgFetchFailed = "Failed to fetch video info. Please try again later."
)

// VideoInfoProvider resolves a video URL into downloadable formats.
type VideoInfoProvider interface {
	GetVideoInfo(ctx context.Context, videoURL string) (*domain.VideoInfo, error)
}

// VideoInfoHandler serves format lookups.
type VideoInfoHandler struct {
	svc    VideoInfoProvider
	logger *slog.Logger
}

// NewVideoInfoHandler creates a new video info handler.
func NewVideoInfoHandler(svc VideoInfoProvider, logger *slog.Logger) *VideoInfoHandler {
	return &VideoInfoHandler{
		svc:    svc,
		logger: logger,
	}
}

// VideoInfoResponse is the JSON response for a successful lookup.
type VideoInfoResponse struct {
	Title     string          `json:"title"`
	Thumbnail string          `json:"thumbnail"`
	Formats   []domain.Format `json:"formats"`
}

// Get handles GET /video-info?url=
func (h *VideoInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if videoURL == "" {
		h.writeError(w, http.StatusBadRequest, msgMissingURL)
		return
	}

	info, err := h.svc.GetVideoInfo(r.Context(), videoURL)
	if err != nil {
		if errors.Is(err, domain.ErrMissingURL) {
			h.writeError(w, http.StatusBadRequest, msgMissingURL)
			return
		}
		h.logger.Error("video info failed",
			"url", videoURL,
			"error", err,
		)
		h.writeError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	formats := info.Formats
	if formats == nil {
		formats = []domain.Format{}
	}

	h.writeJSON(w, http.StatusOK, VideoInfoResponse{
		Title:     info.Title,
		Thumbnail: info.Thumbnail,
		Formats:   formats,
	})
}

func (h *VideoInfoHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *VideoInfoHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
