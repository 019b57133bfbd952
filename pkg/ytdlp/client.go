// Package ytdlp queries yt-dlp for video metadata and stream formats.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/pkg/execx"
)

const toolName = "yt-dlp"

// Extractor fetches format metadata for a video URL.
type Extractor interface {
	Extract(ctx context.Context, videoURL string) (*domain.Extraction, error)
}

// Client runs the yt-dlp binary through a Runner.
type Client struct {
	runner    execx.Runner
	binary    string
	certCheck bool
	timeout   time.Duration
}

// NewClient creates a new yt-dlp client.
func NewClient(cfg config.ToolsConfig, runner execx.Runner) *Client {
	return &Client{
		runner:    runner,
		binary:    cfg.YtDlpPath,
		certCheck: cfg.CertCheck,
		timeout:   cfg.ExtractTimeout,
	}
}

// Args returns the yt-dlp argument list for videoURL.
func (c *Client) Args(videoURL string) []string {
	args := []string{
		"--dump-single-json",
		"--no-warnings",
		"--prefer-free-formats",
		"--youtube-skip-dash-manifest",
	}
	if !c.certCheck {
		args = append(args, "--no-check-certificates")
	}
	// "--" keeps a URL starting with "-" from being read as a flag.
	return append(args, "--", videoURL)
}

// Extract runs yt-dlp and decodes its single JSON document.
func (c *Client) Extract(ctx context.Context, videoURL string) (*domain.Extraction, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	res, err := c.runner.Run(ctx, c.binary, c.Args(videoURL)...)
	if err != nil {
		stderr := ""
		if res != nil {
			stderr = res.Stderr
		}
		return nil, domain.NewToolError(toolName, "extract", stderr,
			fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err))
	}

	var out domain.Extraction
	if err := json.Unmarshal(res.Stdout, &out); err != nil {
		return nil, domain.NewToolError(toolName, "extract", res.Stderr,
			fmt.Errorf("%w: parse output: %v", domain.ErrExtractionFailed, err))
	}

	return &out, nil
}
