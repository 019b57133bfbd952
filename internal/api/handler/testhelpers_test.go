package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockVideoInfoProvider is a test implementation of VideoInfoProvider.
type mockVideoInfoProvider struct {
	info  *domain.VideoInfo
	err   error
	calls int
	url   string
}

func (m *mockVideoInfoProvider) GetVideoInfo(ctx context.Context, videoURL string) (*domain.VideoInfo, error) {
	m.calls++
	m.url = videoURL
	return m.info, m.err
}
