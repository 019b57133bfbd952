package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/domain"
	"github.com/iconidentify/vidgrab/pkg/ffmpeg"
	"github.com/iconidentify/vidgrab/pkg/ytdlp"
)

// VideoInfoService resolves a video URL into downloadable formats.
type VideoInfoService struct {
	extractor ytdlp.Extractor
	merger    ffmpeg.Merger
	cfg       config.StorageConfig
	logger    *slog.Logger
}

// NewVideoInfoService creates a new video info service.
func NewVideoInfoService(
	extractor ytdlp.Extractor,
	merger ffmpeg.Merger,
	storageCfg config.StorageConfig,
	logger *slog.Logger,
) *VideoInfoService {
	return &VideoInfoService{
		extractor: extractor,
		merger:    merger,
		cfg:       storageCfg,
		logger:    logger,
	}
}

// GetVideoInfo extracts formats for videoURL. When a 1080p video-only and
// audio-only pair exists the two are merged into a local file which becomes
// the first returned format.
func (s *VideoInfoService) GetVideoInfo(ctx context.Context, videoURL string) (*domain.VideoInfo, error) {
	if strings.TrimSpace(videoURL) == "" {
		return nil, domain.ErrMissingURL
	}

	extraction, err := s.extractor.Extract(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", videoURL, err)
	}

	s.logger.Debug("formats extracted",
		"url", videoURL,
		"title", extraction.Title,
		"format_count", len(extraction.Formats),
	)

	muxed := MuxedFormats(extraction.Formats)
	pair := FindSplitPair(extraction.Formats)

	info := &domain.VideoInfo{
		Title:     extraction.Title,
		Thumbnail: extraction.Thumbnail,
	}

	if !pair.Complete() {
		info.Formats = DirectFormats(muxed)
		return info, nil
	}

	outputPath := ffmpeg.OutputPath(s.cfg.OutputDir, extraction.Title, domain.MergeHeight)
	s.logger.Info("merging split streams",
		"url", videoURL,
		"output", outputPath,
	)

	if err := s.merger.Merge(ctx, pair.VideoURL, pair.AudioURL, outputPath); err != nil {
		return nil, fmt.Errorf("merge %s: %w", videoURL, err)
	}

	info.Formats = MergedFormats(filepath.ToSlash(outputPath), muxed)
	return info, nil
}
