package service

import (
	"strconv"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// MuxedFormats returns the formats that carry both video and audio, in
// their original order.
func MuxedFormats(raw []domain.RawFormat) []domain.RawFormat {
	muxed := make([]domain.RawFormat, 0, len(raw))
	for _, f := range raw {
		if f.IsMuxed() {
			muxed = append(muxed, f)
		}
	}
	return muxed
}

// FindSplitPair scans the unfiltered format list for a video-only and an
// audio-only stream at exactly domain.MergeHeight. When several match, the
// last one seen wins.
func FindSplitPair(raw []domain.RawFormat) domain.SplitPair {
	var pair domain.SplitPair
	for _, f := range raw {
		if f.Height != domain.MergeHeight {
			continue
		}
		if f.IsVideoOnly() {
			pair.VideoURL = f.URL
		}
		if f.IsAudioOnly() {
			pair.AudioURL = f.URL
		}
	}
	return pair
}

// Describe maps a raw format to the descriptor sent to the browser.
func Describe(f domain.RawFormat) domain.Format {
	quality := f.FormatNote
	if quality == "" {
		quality = strconv.Itoa(f.Height) + "p"
	}
	return domain.Format{
		Quality:   quality,
		URL:       f.URL,
		Container: f.Ext,
	}
}

// DirectFormats describes every muxed format.
func DirectFormats(muxed []domain.RawFormat) []domain.Format {
	formats := make([]domain.Format, 0, len(muxed))
	for _, f := range muxed {
		formats = append(formats, Describe(f))
	}
	return formats
}

// MergedFormats puts the merged file first and follows it with every muxed
// format that is not at the merge height.
func MergedFormats(outputPath string, muxed []domain.RawFormat) []domain.Format {
	formats := make([]domain.Format, 0, len(muxed)+1)
	formats = append(formats, domain.Format{
		Quality:   strconv.Itoa(domain.MergeHeight) + "p",
		URL:       outputPath,
		Container: "mp4",
	})
	for _, f := range muxed {
		if f.Height == domain.MergeHeight {
			continue
		}
		formats = append(formats, Describe(f))
	}
	return formats
}
