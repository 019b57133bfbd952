package domain

// codecNone is what the extraction tool reports for an absent stream.
const codecNone = "none"

// MergeHeight is the only resolution at which split streams are merged.
const MergeHeight = 1080

// Format is a downloadable stream descriptor returned to the browser.
type Format struct {
	Quality   string `json:"quality"`
	URL       string `json:"url"`
	Container string `json:"container"`
}

// RawFormat is a single stream variant as reported by the extraction tool.
type RawFormat struct {
	FormatID   string `json:"format_id"`
	Height     int    `json:"height"`
	VCodec     string `json:"vcodec"`
	ACodec     string `json:"acodec"`
	Ext        string `json:"ext"`
	FormatNote string `json:"format_note"`
	URL        string `json:"url"`
}

// HasVideo reports whether the variant carries a video stream.
func (f RawFormat) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != codecNone
}

// HasAudio reports whether the variant carries an audio stream.
func (f RawFormat) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != codecNone
}

// IsMuxed reports whether video and audio live in the same container.
func (f RawFormat) IsMuxed() bool {
	return f.HasVideo() && f.HasAudio()
}

// IsVideoOnly reports whether the variant has video and no audio.
func (f RawFormat) IsVideoOnly() bool {
	return f.HasVideo() && !f.HasAudio()
}

// IsAudioOnly reports whether the variant has audio and no video.
func (f RawFormat) IsAudioOnly() bool {
	return f.HasAudio() && !f.HasVideo()
}

// Extraction is the metadata produced by the extraction tool for one URL.
type Extraction struct {
	Title     string      `json:"title"`
	Thumbnail string      `json:"thumbnail"`
	Formats   []RawFormat `json:"formats"`
}

// SplitPair holds the separate video-only and audio-only stream URLs
// selected for merging.
type SplitPair struct {
	VideoURL string
	AudioURL string
}

// Complete reports whether both halves of the pair were found.
func (p SplitPair) Complete() bool {
	return p.VideoURL != "" && p.AudioURL != ""
}

// VideoInfo is the result returned for a video URL.
type VideoInfo struct {
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Formats   []Format `json:"formats"`
}
