package domain

import (
	"errors"
	"testing"
)

func TestRawFormat_Codecs(t *testing.T) {
	tests := []struct {
		name      string
		format    RawFormat
		muxed     bool
		videoOnly bool
		audioOnly bool
	}{
		{
			name:   "muxed",
			format: RawFormat{VCodec: "avc1.64001F", ACodec: "mp4a.40.2"},
			muxed:  true,
		},
		{
			name:      "video only",
			format:    RawFormat{VCodec: "vp9", ACodec: "none"},
			videoOnly: true,
		},
		{
			name:      "audio only",
			format:    RawFormat{VCodec: "none", ACodec: "opus"},
			audioOnly: true,
		},
		{
			name:   "neither",
			format: RawFormat{VCodec: "none", ACodec: "none"},
		},
		{
			name:      "empty audio codec counts as absent",
			format:    RawFormat{VCodec: "vp9"},
			videoOnly: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.IsMuxed(); got != tt.muxed {
				t.Errorf("IsMuxed() = %v, want %v", got, tt.muxed)
			}
			if got := tt.format.IsVideoOnly(); got != tt.videoOnly {
				t.Errorf("IsVideoOnly() = %v, want %v", got, tt.videoOnly)
			}
			if got := tt.format.IsAudioOnly(); got != tt.audioOnly {
				t.Errorf("IsAudioOnly() = %v, want %v", got, tt.audioOnly)
			}
		})
	}
}

func TestSplitPair_Complete(t *testing.T) {
	tests := []struct {
		pair SplitPair
		want bool
	}{
		{SplitPair{}, false},
		{SplitPair{VideoURL: "v"}, false},
		{SplitPair{AudioURL: "a"}, false},
		{SplitPair{VideoURL: "v", AudioURL: "a"}, true},
	}

	for _, tt := range tests {
		if got := tt.pair.Complete(); got != tt.want {
			t.Errorf("%+v.Complete() = %v, want %v", tt.pair, got, tt.want)
		}
	}
}

func TestToolError_Error(t *testing.T) {
	err := NewToolError("ffmpeg", "merge", "Invalid data found", ErrMergeFailed)
	want := "ffmpeg merge: stream merge failed | Invalid data found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewToolError("yt-dlp", "extract", "", ErrExtractionFailed)
	if bare.Error() != "yt-dlp extract: format extraction failed" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestToolError_Unwrap(t *testing.T) {
	err := NewToolError("yt-dlp", "extract", "boom", ErrExtractionFailed)
	if !errors.Is(err, ErrExtractionFailed) {
		t.Error("errors.Is should match ErrExtractionFailed")
	}
	if errors.Is(err, ErrMergeFailed) {
		t.Error("errors.Is should not match ErrMergeFailed")
	}
}
