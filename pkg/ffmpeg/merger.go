// Package ffmpeg merges separate video and audio streams with ffmpeg.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/pkg/execx"
)

const (
	toolName = "ffmpeg"

	// maxTitleLen caps the title portion of an output filename in bytes.
	maxTitleLen = 100
)

// Merger combines a video-only and an audio-only stream into one file.
type Merger interface {
	Merge(ctx context.Context, videoURL, audioURL, outputPath string) error
}

// StreamMerger runs the ffmpeg binary through a Runner.
type StreamMerger struct {
	runner  execx.Runner
	binary  string
	timeout time.Duration
}

// NewStreamMerger creates a new ffmpeg merger.
func NewStreamMerger(cfg config.ToolsConfig, runner execx.Runner) *StreamMerger {
	return &StreamMerger{
		runner:  runner,
		binary:  cfg.FFmpegPath,
		timeout: cfg.MergeTimeout,
	}
}

// Args returns the ffmpeg argument list. The video stream is copied and the
// audio stream is re-encoded to AAC.
func Args(videoURL, audioURL, outputPath string) []string {
	return []string{
		"-y",
		"-nostdin",
		"-loglevel", "error",
		"-i", videoURL,
		"-i", audioURL,
		"-c:v", "copy",
		"-c:a", "aac",
		"-strict", "experimental",
		outputPath,
	}
}

// Merge runs ffmpeg synchronously. Output goes to a temporary sibling of
// outputPath which is renamed into place only after ffmpeg succeeds.
func (m *StreamMerger) Merge(ctx context.Context, videoURL, audioURL, outputPath string) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return domain.NewToolError(toolName, "merge", "",
			fmt.Errorf("%w: create output dir: %v", domain.ErrMergeFailed, err))
	}

	tmpPath := partPath(outputPath)
	res, err := m.runner.Run(ctx, m.binary, Args(videoURL, audioURL, tmpPath)...)
	if err != nil {
		os.Remove(tmpPath)
		stderr := ""
		if res != nil {
			stderr = res.Stderr
		}
		return domain.NewToolError(toolName, "merge", stderr,
			fmt.Errorf("%w: %v", domain.ErrMergeFailed, err))
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return domain.NewToolError(toolName, "merge", res.Stderr,
			fmt.Errorf("%w: finalize output: %v", domain.ErrMergeFailed, err))
	}

	return nil
}

var partSuffix = regexp.MustCompile(`\.[0-9a-f]{8}\.part\.mp4$`)

// IsPartial reports whether name is an in-progress merge file written by
// Merge rather than a finished output.
func IsPartial(name string) bool {
	return partSuffix.MatchString(name)
}

// partPath returns a unique in-progress name next to outputPath that keeps
// its extension so ffmpeg can infer the container.
func partPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(outputPath, ext)
	return fmt.Sprintf("%s.%s.part%s", base, uuid.New().String()[:8], ext)
}

// OutputPath returns the merge destination for a video title at the given
// height, e.g. "downloads/My Video-1080p.mp4".
func OutputPath(dir, title string, height int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%dp.mp4", sanitizeTitle(title), height))
}

func sanitizeTitle(s string) string {
	s = strings.TrimSpace(s)

	// Remove or replace invalid filename characters
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", "#", "%", "\n", "\r", "\t", "\x00"}
	for _, char := range invalid {
		s = strings.ReplaceAll(s, char, "_")
	}

	// Leading dots would hide the file or walk up the tree
	s = strings.TrimLeft(s, ".")
	s = strings.TrimSpace(s)

	if len(s) > maxTitleLen {
		s = s[:maxTitleLen]
		for !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
	}

	if s == "" {
		return "video"
	}
	return s
}
